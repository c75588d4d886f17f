package users

import (
	"context"
)

// Repository persists the whole user list. Load must return an empty list
// when the backing collection does not exist yet.
type Repository interface {
	Load(ctx context.Context) ([]User, error)
	Save(ctx context.Context, users []User) error
}
