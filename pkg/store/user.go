package store

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// UserStore is an interface for managing users.
type UserStore interface {
	GetUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error)
	FindUserByExternalID(ctx context.Context, h db.Handler, externalID string) (models.User, error)
	FindUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error)
	FindUserByAccessToken(ctx context.Context, h db.Handler, token string) (models.User, error)
	GetAllUsers(ctx context.Context, h db.Handler) ([]models.User, error)
	CreateUser(ctx context.Context, h db.Handler, identity proto.Identity) (models.User, error)
	UpdateUserByExternalID(ctx context.Context, h db.Handler, identity proto.Identity) error
	DeleteUserByExternalID(ctx context.Context, h db.Handler, externalID string) error
}
