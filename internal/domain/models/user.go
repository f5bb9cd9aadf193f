// internal/domain/models/user.go
package models

// User is anyone who can be quoted, record quotes, or comment.
//
// EmailAddress is the join key for Google sign-in; users created before
// Google sign-in existed may only have an OpenID.
type User struct {
	ID           int64   `json:"id"`
	EmailAddress *string `json:"email_address,omitempty"`
	Username     *string `json:"username,omitempty"`
	Fullname     string  `json:"fullname"`
	OpenID       *string `json:"openid,omitempty"`
}

// UsernameOrFullname returns the username if set, else the full name.
func (u User) UsernameOrFullname() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Fullname
}

// Email returns the email address or "" when none is on record.
func (u User) Email() string {
	if u.EmailAddress == nil {
		return ""
	}
	return *u.EmailAddress
}
