// userservice.go
package userservice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/haguru/localauth/internal/autherrors"
	"github.com/haguru/localauth/internal/credstore"
	"github.com/haguru/localauth/internal/interfaces"
	"github.com/haguru/localauth/internal/models"
	"github.com/haguru/localauth/internal/validator"
	"github.com/haguru/localauth/pkg/helper"
)

// UserService turns UI events into store operations. Every handler takes
// parsed input and returns a record or an error value; nothing here knows
// about HTTP or terminals.
type UserService struct {
	Store  *credstore.Store
	Logger interfaces.Logger

	// mu serialises read-modify-write of the collection within the process.
	mu sync.Mutex
}

// NewUserService creates a new UserService instance.
func NewUserService(store *credstore.Store, logger interfaces.Logger) *UserService {
	return &UserService{
		Store:  store,
		Logger: logger,
	}
}

// SubmitRegister validates the register form, enforces uniqueness and
// appends the new record. Rejections come back as autherrors.FieldErrors.
func (s *UserService) SubmitRegister(ctx context.Context, in interfaces.RegisterInput) (*models.UserRecord, error) {
	funcName := helper.GetFuncName()
	username := validator.TrimSpace(validator.Normalize(in.Username))
	email := validator.TrimSpace(validator.Normalize(in.Email))
	password := validator.Normalize(in.Password)

	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if errs := validator.ValidateRegistration(validator.RegistrationInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: validator.Normalize(in.ConfirmPassword),
	}); errs != nil {
		s.Logger.Info(MsgRegisterRejected, "func", funcName, "user", username, "reason", errs.Error())
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Logger.Info(MsgRegisteringUser, "func", funcName, "user", username)
	records, err := s.Store.LoadAll(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}

	next, rec, err := s.Store.Register(records, *models.NewUserRecord(username, email, password))
	switch {
	case errors.Is(err, autherrors.ErrDuplicateUsername):
		s.Logger.Info(MsgRegisterRejected, "func", funcName, "user", username, "reason", err.Error())
		return nil, autherrors.FieldErrors{autherrors.NewFieldError(autherrors.FieldUsername, autherrors.KindDuplicateUsername)}
	case errors.Is(err, autherrors.ErrDuplicateEmail):
		s.Logger.Info(MsgRegisterRejected, "func", funcName, "user", username, "reason", err.Error())
		return nil, autherrors.FieldErrors{autherrors.NewFieldError(autherrors.FieldEmail, autherrors.KindDuplicateEmail)}
	case err != nil:
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}

	if err := s.Store.SaveAll(ctx, next); err != nil {
		s.Logger.Error(ErrFailedToSaveUsers, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSaveUsers, err)
	}

	s.Logger.Info(MsgUserRegistered, "func", funcName, "user", username, "count", len(next))
	return rec, nil
}

// SubmitLogin checks the credentials against the stored collection and, if
// asked, remembers the username for the next visit.
func (s *UserService) SubmitLogin(ctx context.Context, in interfaces.LoginInput) (*models.UserRecord, error) {
	funcName := helper.GetFuncName()
	username := validator.TrimSpace(validator.Normalize(in.Username))
	password := validator.Normalize(in.Password)

	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if err := validator.ValidateLogin(username, password); err != nil {
		s.Logger.Info(MsgLoginRejected, "func", funcName, "user", username, "reason", err.Error())
		return nil, err
	}

	s.Logger.Info(MsgAuthenticatingUser, "func", funcName, "user", username)
	records, err := s.Store.LoadAll(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}

	user := s.Store.Authenticate(records, username, password)
	if user == nil {
		s.Logger.Info(MsgLoginRejected, "func", funcName, "user", username, "reason", autherrors.ErrInvalidCredentials.Error())
		return nil, autherrors.ErrInvalidCredentials
	}

	if in.RememberMe {
		if err := s.Store.RememberUser(ctx, user.Username); err != nil {
			s.Logger.Error(ErrFailedToRememberUser, "func", funcName, "user", username, "error", err)
			return nil, fmt.Errorf("%s: %w", ErrFailedToRememberUser, err)
		}
		s.Logger.Debug(MsgUserRemembered, "func", funcName, "user", username)
	}

	s.Logger.Info(MsgUserAuthenticated, "func", funcName, "user", username)
	return user, nil
}

// BlurField validates one field as the user leaves it. It returns nil when
// there is nothing to show. Username and email are also checked against the
// stored collection.
func (s *UserService) BlurField(ctx context.Context, field, value, password string) (*autherrors.FieldError, error) {
	if !validator.IsKnownField(field) {
		return nil, fmt.Errorf("%s: %s", ErrUnknownField, field)
	}

	value = validator.Normalize(value)
	password = validator.Normalize(password)
	if field == autherrors.FieldUsername || field == autherrors.FieldEmail {
		value = validator.TrimSpace(value)
	}

	if fe := validator.ValidateField(field, value, password); fe != nil || value == "" {
		return fe, nil
	}

	if field != autherrors.FieldUsername && field != autherrors.FieldEmail {
		return nil, nil
	}

	records, err := s.Store.LoadAll(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", helper.GetFuncName(), "field", field, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}

	if field == autherrors.FieldUsername && credstore.FindByUsername(records, value) != nil {
		return autherrors.NewFieldError(field, autherrors.KindDuplicateUsername), nil
	}
	if field == autherrors.FieldEmail && credstore.FindByEmail(records, value) != nil {
		return autherrors.NewFieldError(field, autherrors.KindDuplicateEmail), nil
	}
	return nil, nil
}

// RememberedUser returns the username to pre-fill on the login form.
func (s *UserService) RememberedUser(ctx context.Context) (string, bool, error) {
	username, ok, err := s.Store.LoadRememberedUser(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadRemembered, "func", helper.GetFuncName(), "error", err)
		return "", false, fmt.Errorf("%s: %w", ErrFailedToLoadRemembered, err)
	}
	return username, ok, nil
}

// CountUsers reports how many records the collection holds.
func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	records, err := s.Store.LoadAll(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", helper.GetFuncName(), "error", err)
		return 0, fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}
	return len(records), nil
}

// SwitchView resolves a form toggle. Only the login and register views exist.
func (s *UserService) SwitchView(target string) (string, error) {
	switch target {
	case ViewLogin, ViewRegister:
		return target, nil
	default:
		return "", fmt.Errorf("%s: %q", ErrUnknownView, target)
	}
}
