package application

import "errors"

// Caller-facing error conditions. Handlers translate these into HTTP
// statuses; anything else is a storage failure and surfaces as a generic 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotAllowed         = errors.New("not authorized")
	ErrSelfFollow         = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmptyComment       = errors.New("comment text is required")
)

// Identity is the resolved authentication result every authored operation
// receives; the core never inspects credentials itself.
type Identity struct {
	UserID  string
	IsAdmin bool
}
