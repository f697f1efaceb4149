package dto

import "github.com/haguru/localauth/internal/models"

// UserRegisterRequestDTO is decoded as-is; field rules are applied by the
// user service so that every field reports its own error.
type UserRegisterRequestDTO struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserRegisterResponseDTO tells the client which form to show next.
type UserRegisterResponseDTO struct {
	Message string            `json:"message"`
	View    string            `json:"view"`
	User    models.UserRecord `json:"user"`
}

// ValidateFieldRequestDTO carries a single blurred field. Password is only
// read when Field is confirm_password.
type ValidateFieldRequestDTO struct {
	Field    string `json:"field" validate:"required,oneof=username email password confirm_password"`
	Value    string `json:"value"`
	Password string `json:"password"`
}

type ValidateFieldResponseDTO struct {
	Field string `json:"field"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

type SwitchViewRequestDTO struct {
	Target string `json:"target" validate:"required"`
}

type SwitchViewResponseDTO struct {
	View string `json:"view"`
}

type ErrorResponseDTO struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
