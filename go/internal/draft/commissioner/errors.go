package commissioner

import "errors"

var (
	// ErrNotAuthorized indicates the caller is not the league commissioner
	ErrNotAuthorized = errors.New("only the commissioner can perform this action")

	// ErrExtensionsNotAllowed indicates the league disabled time extensions
	ErrExtensionsNotAllowed = errors.New("time extensions are not allowed in this league")
)
