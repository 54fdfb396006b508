package hostresolver

import "errors"

// Sentinel errors for the hostresolver package.
var (
	// Configuration errors. Returned by New only.
	ErrInvalidProxy       = errors.New("hostresolver: invalid trusted proxy")
	ErrInvalidHostPattern = errors.New("hostresolver: invalid trusted host pattern")
	ErrInvalidDefaultHost = errors.New("hostresolver: invalid default host")

	// Candidate rejection reasons. Never returned from resolution methods;
	// they are recorded in Resolution.Rejections.
	ErrEmptyHost       = errors.New("hostresolver: empty host")
	ErrHostTooLong     = errors.New("hostresolver: host exceeds maximum length")
	ErrInvalidHostChar = errors.New("hostresolver: host contains invalid characters")
	ErrInvalidHost     = errors.New("hostresolver: malformed host")
	ErrInvalidPort     = errors.New("hostresolver: invalid port")
	ErrInvalidLabel    = errors.New("hostresolver: invalid host label")
	ErrHostNotAllowed  = errors.New("hostresolver: host not in trusted host patterns")
	ErrUntrustedProxy  = errors.New("hostresolver: forwarded header from untrusted peer")
	ErrInvalidProto    = errors.New("hostresolver: unsupported forwarded protocol")
)
