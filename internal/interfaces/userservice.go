package interfaces

import (
	"context"

	"github.com/haguru/localauth/internal/autherrors"
	"github.com/haguru/localauth/internal/models"
)

// RegisterInput is the submitted register form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is the submitted login form.
type LoginInput struct {
	Username   string
	Password   string
	RememberMe bool
}

// UserService is the command surface the UI boundaries talk to.
type UserService interface {
	SubmitRegister(ctx context.Context, in RegisterInput) (*models.UserRecord, error)
	SubmitLogin(ctx context.Context, in LoginInput) (*models.UserRecord, error)
	BlurField(ctx context.Context, field, value, password string) (*autherrors.FieldError, error)
	RememberedUser(ctx context.Context) (string, bool, error)
	CountUsers(ctx context.Context) (int, error)
	SwitchView(target string) (string, error)
}
