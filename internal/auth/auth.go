package auth

import "context"

// Session identifies an authenticated user for the duration of a
// request. It is derived from a verified access token and never from
// client-supplied fields.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

// Profile is the user profile record held by the auth backend.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// Gateway verifies access tokens and looks up user profiles against the
// external auth backend. The backend is opaque to the rest of the
// service; everything downstream works with Session values.
type Gateway interface {
	// SessionFromToken verifies a bearer token and returns the session
	// it encodes. An invalid, expired, or tampered token yields an
	// error.
	SessionFromToken(token string) (*Session, error)

	// Profile fetches the profile record for a user ID.
	Profile(ctx context.Context, userID string) (*Profile, error)
}
