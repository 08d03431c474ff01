package models

import "errors"

var (
	// ErrArticleNotFound is returned for unknown articles and for articles
	// the actor is not allowed to see, so the two cases are
	// indistinguishable from outside.
	ErrArticleNotFound = errors.New("article not found")
	// ErrForbidden is returned when the actor fails an ownership or role check.
	ErrForbidden = errors.New("access denied")
	// ErrAlreadyModerated is returned when approving or rejecting an article
	// that is no longer pending.
	ErrAlreadyModerated = errors.New("article is not pending")
	// ErrTitleRequired is returned when an article is submitted without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrFileType is returned when an upload's extension is not on the
	// allow-list for its kind.
	ErrFileType = errors.New("file type not allowed")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a token cannot be parsed or verified.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound is returned for unknown users.
	ErrUserNotFound = errors.New("user not found")
)
