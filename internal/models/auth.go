package models

import "fmt"

// Credentials is the body of an authentication request. Empty fields are
// omitted so requests with a missing username or password can be expressed.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResponse is the body returned by the authentication endpoint: either
// a token or a failure reason.
type AuthResponse struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Token is an opaque session credential
type Token string

// IsZero reports whether the token is empty
func (t Token) IsZero() bool {
	return t == ""
}

// Cookie returns the Cookie header value carrying the token
func (t Token) Cookie() string {
	return fmt.Sprintf("token=%s", string(t))
}
