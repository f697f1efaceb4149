package credstore

const (
	// Default storage keys, the same names a browser build would use.
	DefaultUsersKey  = "users"
	DefaultMarkerKey = "currentUser"

	// Error messages for store operations
	ErrFailedToReadCollection   = "failed to read user collection"
	ErrFailedToWriteCollection  = "failed to write user collection"
	ErrFailedToEncodeCollection = "failed to encode user collection"
	ErrFailedToEncodePassword   = "failed to encode password" // #nosec G101
	ErrFailedToReadMarker       = "failed to read remembered user"
	ErrFailedToWriteMarker      = "failed to write remembered user"

	// Warnings for stored data that is ignored
	WarnMalformedCollection = "stored user collection is malformed, treating as empty"
	WarnMalformedMarker     = "stored remembered user is malformed, ignoring"
)
