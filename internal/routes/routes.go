package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/localauth/internal/autherrors"
	"github.com/haguru/localauth/internal/interfaces"
	"github.com/haguru/localauth/internal/metrics"
	"github.com/haguru/localauth/internal/middleware"
	"github.com/haguru/localauth/internal/models/dto"
	"github.com/haguru/localauth/internal/userservice"
	"github.com/haguru/localauth/pkg/helper"

	structValidator "github.com/go-playground/validator/v10"
)

type Route struct {
	Metrics     interfaces.Metrics
	UserService interfaces.UserService
	Logger      interfaces.Logger
	validator   *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService,
	logger interfaces.Logger, validator *structValidator.Validate,
) *Route {
	return &Route{
		Metrics:     metrics,
		UserService: userService,
		Logger:      logger,
		validator:   validator,
	}
}

// Register handles the register form submission.
func (r *Route) Register(w http.ResponseWriter, req *http.Request) {
	r.incCounter(metrics.RegisterRequestsTotal)
	if !r.checkPostJSON(w, req) {
		r.incCounterVec(metrics.RegisterRejectedTotal, ReasonBadRequest)
		return
	}

	registerRequest := &dto.UserRegisterRequestDTO{}
	if err := json.NewDecoder(req.Body).Decode(registerRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody, nil)
		r.incCounterVec(metrics.RegisterRejectedTotal, ReasonBadRequest)
		return
	}

	startTime := time.Now()
	user, err := r.UserService.SubmitRegister(req.Context(), interfaces.RegisterInput{
		Username:        registerRequest.Username,
		Email:           registerRequest.Email,
		Password:        registerRequest.Password,
		ConfirmPassword: registerRequest.ConfirmPassword,
	})
	r.observe(metrics.RegisterDurationSeconds, startTime)

	if err != nil {
		var fieldErrs autherrors.FieldErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			status := http.StatusBadRequest
			if errors.Is(err, autherrors.ErrDuplicateUsername) || errors.Is(err, autherrors.ErrDuplicateEmail) {
				status = http.StatusConflict
			}
			r.errorResponse(w, status, err, fieldErrs[0].Message, fieldErrs.Map())
			r.incCounterVec(metrics.RegisterRejectedTotal, string(fieldErrs[0].Kind))
			return
		}

		r.logger(req).Error("Failed to register user", "func", helper.GetFuncName(), "error", err)
		r.errorResponse(w, http.StatusInternalServerError, err, MsgInternalError, nil)
		r.incCounterVec(metrics.RegisterRejectedTotal, ReasonInternal)
		return
	}

	r.incCounter(metrics.RegisterSuccessTotal)
	r.refreshUserCount(req)

	r.writeJSON(w, http.StatusCreated, &dto.UserRegisterResponseDTO{
		Message: fmt.Sprintf(MsgRegistrationSuccessfulFormat, user.Username),
		View:    userservice.ViewLogin,
		User:    user.Public(),
	})
}

// Login handles the login form submission.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	r.incCounter(metrics.LoginRequestsTotal)
	if !r.checkPostJSON(w, req) {
		r.incCounterVec(metrics.LoginFailedTotal, ReasonBadRequest)
		return
	}

	loginRequest := &dto.LoginRequestDTO{}
	if err := json.NewDecoder(req.Body).Decode(loginRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody, nil)
		r.incCounterVec(metrics.LoginFailedTotal, ReasonBadRequest)
		return
	}

	startTime := time.Now()
	user, err := r.UserService.SubmitLogin(req.Context(), interfaces.LoginInput{
		Username:   loginRequest.Username,
		Password:   loginRequest.Password,
		RememberMe: loginRequest.RememberMe,
	})
	r.observe(metrics.LoginDurationSeconds, startTime)

	switch {
	case errors.Is(err, autherrors.ErrEmptyField):
		r.errorResponse(w, http.StatusBadRequest, err, autherrors.MsgFillAllFields, nil)
		r.incCounterVec(metrics.LoginFailedTotal, string(autherrors.KindEmptyField))
		return
	case errors.Is(err, autherrors.ErrInvalidCredentials):
		r.errorResponse(w, http.StatusUnauthorized, err, autherrors.MsgInvalidCredentials, nil)
		r.incCounterVec(metrics.LoginFailedTotal, string(autherrors.KindInvalidCredentials))
		return
	case err != nil:
		r.logger(req).Error("Failed to log in user", "func", helper.GetFuncName(), "error", err)
		r.errorResponse(w, http.StatusInternalServerError, err, MsgInternalError, nil)
		r.incCounterVec(metrics.LoginFailedTotal, ReasonInternal)
		return
	}

	r.incCounter(metrics.LoginSuccessTotal)
	r.writeJSON(w, http.StatusOK, &dto.LoginResponseDTO{
		Message:  fmt.Sprintf(MsgLoginSuccessfulFormat, user.Username),
		Username: user.Username,
	})
}

// LoginRateLimited is called by the rate limiter for each rejected login.
func (r *Route) LoginRateLimited(*http.Request) {
	r.incCounter(metrics.LoginRateLimitedTotal)
}

// Validate runs live validation for a single field as it loses focus.
func (r *Route) Validate(w http.ResponseWriter, req *http.Request) {
	if !r.checkPostJSON(w, req) {
		return
	}

	validateRequest := &dto.ValidateFieldRequestDTO{}
	if err := json.NewDecoder(req.Body).Decode(validateRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody, nil)
		return
	}
	if err := r.validator.Struct(validateRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgUnknownField, nil)
		return
	}

	fe, err := r.UserService.BlurField(req.Context(), validateRequest.Field, validateRequest.Value, validateRequest.Password)
	if err != nil {
		r.logger(req).Error("Failed to validate field", "func", helper.GetFuncName(), "field", validateRequest.Field, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, err, MsgInternalError, nil)
		return
	}

	resp := &dto.ValidateFieldResponseDTO{Field: validateRequest.Field}
	if fe != nil {
		resp.Error = fe.Message
		resp.Code = string(fe.Kind)
		r.incCounterVec(metrics.FieldRejectedTotal, fe.Field, string(fe.Kind))
	}
	r.writeJSON(w, http.StatusOK, resp)
}

// Remembered returns the username to pre-fill on the login form.
func (r *Route) Remembered(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.errorResponse(w, http.StatusMethodNotAllowed, fmt.Errorf(ErrMethodNotAllowedFormat, req.Method), MsgMethodNotAllowed, nil)
		return
	}

	username, ok, err := r.UserService.RememberedUser(req.Context())
	if err != nil {
		r.logger(req).Error("Failed to load remembered user", "func", helper.GetFuncName(), "error", err)
		r.errorResponse(w, http.StatusInternalServerError, err, MsgInternalError, nil)
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.RememberedUserResponseDTO{
		Username:   username,
		Remembered: ok,
	})
}

// View switches between the login and register forms.
func (r *Route) View(w http.ResponseWriter, req *http.Request) {
	if !r.checkPostJSON(w, req) {
		return
	}

	viewRequest := &dto.SwitchViewRequestDTO{}
	if err := json.NewDecoder(req.Body).Decode(viewRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody, nil)
		return
	}
	if err := r.validator.Struct(viewRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgUnknownView, nil)
		return
	}

	view, err := r.UserService.SwitchView(viewRequest.Target)
	if err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgUnknownView, nil)
		return
	}
	r.writeJSON(w, http.StatusOK, &dto.SwitchViewResponseDTO{View: view})
}

// refreshUserCount sets the registered users gauge from the store.
func (r *Route) refreshUserCount(req *http.Request) {
	if r.Metrics == nil {
		return
	}
	n, err := r.UserService.CountUsers(req.Context())
	if err != nil {
		r.logger(req).Warn("Failed to count users", "func", helper.GetFuncName(), "error", err)
		return
	}
	r.Metrics.SetGauge(metrics.RegisteredUsers, float64(n))
}

func (r *Route) checkPostJSON(w http.ResponseWriter, req *http.Request) bool {
	if req.Method != http.MethodPost {
		r.errorResponse(w, http.StatusMethodNotAllowed, fmt.Errorf(ErrMethodNotAllowedFormat, req.Method), MsgMethodNotAllowed, nil)
		return false
	}
	if req.Header.Get(ContentType) != ContentTypeJson {
		r.errorResponse(w, http.StatusBadRequest, fmt.Errorf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), MsgInvalidContentType, nil)
		return false
	}
	return true
}

func (r *Route) logger(req *http.Request) interfaces.Logger {
	return middleware.LoggerFromContext(req.Context(), r.Logger)
}

func (r *Route) incCounter(name string) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(name)
	}
}

func (r *Route) incCounterVec(name string, labels ...string) {
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(name, labels...)
	}
}

func (r *Route) observe(name string, start time.Time) {
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(name, time.Since(start).Seconds())
	}
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "func", helper.GetFuncName(), "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, err error, message string, fields map[string]string) {
	r.writeJSON(w, status, &dto.ErrorResponseDTO{
		Error:   err.Error(),
		Message: message,
		Fields:  fields,
	})
}
