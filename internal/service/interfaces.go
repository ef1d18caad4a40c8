package service

import (
	"context"

	"github.com/dkotelnikov/user-service/models"
)

type UserService interface {
	ListUsers(ctx context.Context, req models.ListUsersRequest) ([]models.User, models.Pagination, error)
	GetUser(ctx context.Context, id string) (models.User, error)

	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)

	DeleteUser(ctx context.Context, id string) error
	RestoreUser(ctx context.Context, id string) (models.User, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) models.HealthResponse
}
