package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-vacation/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	getAllFn func(ctx context.Context) ([]user.UserResponse, error)
}

func (f *fakeUserService) GetAll(ctx context.Context) ([]user.UserResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeUserService) GetByID(ctx context.Context, id int) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}

func (f *fakeUserService) EnsureSeedUsers(ctx context.Context) error {
	return nil
}

func TestUserHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			getAllFn: func(ctx context.Context) ([]user.UserResponse, error) {
				return []user.UserResponse{
					{ID: 1, Name: "Alice Johnson", Role: user.RoleRequester},
					{ID: 4, Name: "Dan Miller", Role: user.RoleValidator},
				}, nil
			},
		}
		h := user.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Ok   bool                `json:"ok"`
			Data []user.UserResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.Len(t, env.Data, 2)
		assert.Equal(t, "Alice Johnson", env.Data[0].Name)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeUserService{
			getAllFn: func(ctx context.Context) ([]user.UserResponse, error) {
				return nil, assert.AnError
			},
		}
		h := user.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)
		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
