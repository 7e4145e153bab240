package usererrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

var ErrUserNotFound = apperror.New(
	apperror.CodeNotFound,
	"user not found",
	http.StatusNotFound,
)
