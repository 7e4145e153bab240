package user

import (
	"context"
	"errors"

	usererrors "go-vacation/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id int) (UserResponse, error)
	EnsureSeedUsers(ctx context.Context) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// EnsureSeedUsers installs the default directory on an empty table. The
// reference deployment ships a fixed user list; keeping the seed here
// leaves the rest of the service principal-agnostic.
func (s *service) EnsureSeedUsers(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []User{
		{Name: "Alice Johnson", Role: RoleRequester},
		{Name: "Bob Smith", Role: RoleRequester},
		{Name: "Carol Davis", Role: RoleRequester},
		{Name: "Dan Miller", Role: RoleValidator},
	}
	if err := s.repo.CreateBatch(ctx, seed); err != nil {
		return err
	}

	s.logger.Info("seeded default users", zap.Int("count", len(seed)))
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
	}
}
