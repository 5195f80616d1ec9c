package port

import "errors"

var (
	// ErrNotFound indicates the remote API has no such resource.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden indicates the remote API rejected the credentials.
	ErrForbidden = errors.New("remote api forbidden")
	// ErrUnsupported is returned when an endpoint has not been configured.
	ErrUnsupported = errors.New("endpoint unsupported")
	// ErrUpstream wraps any other non-2xx or unsuccessful envelope from the remote API.
	ErrUpstream = errors.New("remote api error")
)
