package models

// Session is an authenticated session. UserID is the owning account's email;
// JWT is an opaque bearer token issued by the caller. At most one session
// exists per UserID.
type Session struct {
	UserID string
	JWT    string
}
