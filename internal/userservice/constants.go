package userservice

const (
	// Views of the two-state form toggle
	ViewLogin    = "login"
	ViewRegister = "register"

	// Error messages for user service operations
	ErrFailedToLoadUsers      = "failed to load users"
	ErrFailedToRegisterUser   = "failed to register user"
	ErrFailedToSaveUsers      = "failed to save users"
	ErrFailedToRememberUser   = "failed to remember user"
	ErrFailedToLoadRemembered = "failed to load remembered user"
	ErrUnknownView            = "unknown view"
	ErrUnknownField           = "unknown field"

	// Log messages
	MsgRegisteringUser    = "Registering user"
	MsgUserRegistered     = "User registered successfully"
	MsgRegisterRejected   = "Registration rejected"
	MsgAuthenticatingUser = "Authenticating user"
	MsgUserAuthenticated  = "User authenticated successfully"
	MsgLoginRejected      = "Login rejected"
	MsgUserRemembered     = "User remembered"
)
