package routes

const (
	// API route constants
	RegisterRouteAPI   = "/register"
	LoginRouteAPI      = "/login"
	ValidateRouteAPI   = "/validate"
	RememberedRouteAPI = "/remembered"
	ViewRouteAPI       = "/view"
	MetricsRouteAPI    = "/metrics"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	// message constants
	MsgLoginSuccessfulFormat        = "Welcome back, %s! Login successful"
	MsgRegistrationSuccessfulFormat = "Registration successful! Welcome, %s"
	MsgMethodNotAllowed       = "Method not allowed"
	MsgInvalidContentType     = "Request Content-Type must be application/json"
	MsgInvalidRequestBody     = "Invalid request body"
	MsgInternalError          = "Something went wrong, please try again"
	MsgUnknownField           = "Unknown field"
	MsgUnknownView            = "Unknown view"

	// Error messages
	ErrMethodNotAllowedFormat   = "method %s not allowed"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrFailedToEncodeResponse   = "failed to encode response"

	// metric label values that are not a rejection kind
	ReasonInternal   = "internal"
	ReasonBadRequest = "bad_request"
)
