package storage

import (
	"context"
	"errors"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
)

// ErrNotFound is returned by lookups for records that do not exist.
var ErrNotFound = errors.New("storage: not found")

// UserRepository persists users. Create assigns the record's ID in the
// backend's native format.
type UserRepository interface {
	CreateUser(ctx context.Context, user *internal.User) error
	GetUser(ctx context.Context, id string) (*internal.User, error)
	ListUsers(ctx context.Context) ([]internal.User, error)
	DeleteAllUsers(ctx context.Context) error
}

// ExerciseRepository persists exercises. ListUserExercises returns at
// most limit records for the user; limit <= 0 means no limit.
type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *internal.Exercise) error
	ListExercises(ctx context.Context) ([]internal.Exercise, error)
	ListUserExercises(ctx context.Context, userID string, limit int64) ([]internal.Exercise, error)
	DeleteAllExercises(ctx context.Context) error
}

// Store is the full persistence surface a backend provides.
type Store interface {
	UserRepository
	ExerciseRepository
}
