package errors

import "errors"

var (
	ErrInvalidURL           = errors.New("url: scheme or host missing")
	ErrInvalidPattern       = errors.New("rules: invalid regex pattern")
	ErrBadHTTPStatusCode    = errors.New("registry: unexpected http status code")
	ErrUnauthorizedAccess   = errors.New("registry: unauthorized access")
	ErrManifestNotFound     = errors.New("manifest: not found")
	ErrDigestHeaderMissing  = errors.New("manifest: digest header missing in response")
	ErrFlagValueUnsupported = errors.New("cli: unsupported flag value")
)
