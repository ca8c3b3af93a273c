package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arvela/contactbook/internal/platform/auth"
	usersvc "github.com/arvela/contactbook/internal/service/user"
)

// Register registers user endpoints.
func Register(api huma.API, svc usersvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/users",
		Summary:       "Register the calling user",
		Description:   "Creates a user record for the authenticated caller on first sign-in. The id is the token subject; only the username (and optional avatar) come from the request.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *UserCreateInput) (*UserCreateOutput, error) {
		caller := auth.UserFromContext(ctx)

		u, err := svc.Create(ctx, caller.UID, usersvc.CreateParams{
			Username: input.Body.Username,
			Avatar:   input.Body.Avatar,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &UserCreateOutput{
			Location: "/api/users/me",
			Body:     toHTTPUser(u),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-current-user",
		Method:      http.MethodGet,
		Path:        "/users/me",
		Summary:     "Get the calling user",
		Description: "Returns the authenticated caller's user record.",
		Tags:        []string{"Users"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *UserGetInput) (*UserGetOutput, error) {
		caller := auth.UserFromContext(ctx)

		u, err := svc.Get(ctx, caller.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &UserGetOutput{Body: toHTTPUser(u)}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, usersvc.ErrNotFound):
		return huma.Error404NotFound("user not found")
	case errors.Is(err, usersvc.ErrUsernameTaken):
		return huma.Error400BadRequest("username already taken")
	case errors.Is(err, usersvc.ErrAlreadyRegistered):
		return huma.Error400BadRequest("user already registered")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPUser(u *usersvc.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}
