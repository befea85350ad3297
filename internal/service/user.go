package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/storage"
)

var validate = validator.New()

type CreateUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

func ValidateCreateUserRequest(req *CreateUserRequest) error {
	return validate.Struct(req)
}

// CreateUser stores a new user. Duplicate usernames are allowed; the
// repository assigns the ID.
func CreateUser(ctx context.Context, users storage.UserRepository, req *CreateUserRequest) (*internal.User, error) {
	user := &internal.User{Username: req.Username}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
