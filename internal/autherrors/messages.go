package autherrors

// Messages shown next to a field or in the banner.
const (
	MsgFillAllFields      = "Please fill in all fields"
	MsgEnterUsername      = "Please enter a username"
	MsgUsernameFormat     = "Username must be at least 3 characters and contain only letters, digits and underscores"
	MsgUsernameTaken      = "This username is already taken"
	MsgEnterEmail         = "Please enter an email address"
	MsgEmailFormat        = "Please enter a valid email address"
	MsgEmailTaken         = "This email is already registered"
	MsgEnterPassword      = "Please enter a password"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgConfirmPassword    = "Please confirm your password"
	MsgPasswordMismatch   = "The two passwords do not match"
	MsgInvalidCredentials = "Invalid username or password"
)

var emptyMessages = map[string]string{
	FieldUsername:        MsgEnterUsername,
	FieldEmail:           MsgEnterEmail,
	FieldPassword:        MsgEnterPassword,
	FieldConfirmPassword: MsgConfirmPassword,
}

// MessageFor returns the user-facing text for a field rejection.
func MessageFor(field string, kind Kind) string {
	switch kind {
	case KindEmptyField:
		if msg, ok := emptyMessages[field]; ok {
			return msg
		}
		return MsgFillAllFields
	case KindInvalidFormat:
		if field == FieldEmail {
			return MsgEmailFormat
		}
		return MsgUsernameFormat
	case KindPasswordTooShort:
		return MsgPasswordTooShort
	case KindPasswordMismatch:
		return MsgPasswordMismatch
	case KindDuplicateUsername:
		return MsgUsernameTaken
	case KindDuplicateEmail:
		return MsgEmailTaken
	case KindInvalidCredentials:
		return MsgInvalidCredentials
	}
	return string(kind)
}
