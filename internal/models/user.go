package models

// UserRecord is one stored user. Field order matches the persisted JSON
// object: username, email, password, createdAt.
type UserRecord struct {
	Username  string `json:"username" mapstructure:"username" bson:"username"`
	Email     string `json:"email" mapstructure:"email" bson:"email"`
	Password  string `json:"password" mapstructure:"password" bson:"password"`
	CreatedAt string `json:"createdAt" mapstructure:"createdAt" bson:"createdAt"`
}

// UserCollection is the ordered list of records persisted under one key.
type UserCollection []UserRecord

// CurrentUserMarker is the remembered-username value written on a
// "remember me" login.
type CurrentUserMarker struct {
	Username string `json:"username" mapstructure:"username"`
}

// NewUserRecord creates a new UserRecord. CreatedAt is left empty for the
// store to stamp.
// Note: No validation is performed here.
func NewUserRecord(username, email, password string) *UserRecord {
	return &UserRecord{
		Username: username,
		Email:    email,
		Password: password,
	}
}

// Public returns a copy of the record with the password cleared.
func (u UserRecord) Public() UserRecord {
	u.Password = ""
	return u
}
