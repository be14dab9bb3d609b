// Package users declares the server-side account repository.
package users

import (
	"context"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the user and returns it with ID and CreatedAt filled.
	// A taken username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
