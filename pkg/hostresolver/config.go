package hostresolver

// Default header names consulted by the HTTP adapter.
const (
	DefaultForwardedProtoHeader = "X-Forwarded-Proto"
	DefaultForwardedHostHeader  = "X-Forwarded-Host"

	// DefaultMaxHostLength is the DNS name ceiling.
	DefaultMaxHostLength = 253
)

// Config holds the operator-supplied trust policy.
// It is read once by New; changing it afterwards has no effect on the Resolver.
type Config struct {
	// DefaultHost is returned when no request candidate survives sanitization.
	// Empty means "no trustworthy host", which makes RequestURL report absence.
	DefaultHost string `env:"HOSTGUARD_DEFAULT_HOST" yaml:"default_host"`

	// ServerName is the hosting environment's own name for this server.
	// It is used as a fallback after the Host header.
	ServerName string `env:"HOSTGUARD_SERVER_NAME" yaml:"server_name"`

	ForwardedProtoHeader string `env:"HOSTGUARD_FORWARDED_PROTO_HEADER" envDefault:"X-Forwarded-Proto" yaml:"forwarded_proto_header"`
	ForwardedHostHeader  string `env:"HOSTGUARD_FORWARDED_HOST_HEADER" envDefault:"X-Forwarded-Host" yaml:"forwarded_host_header"`

	// TrustedProxies lists peer IPs or CIDRs allowed to set forwarded headers.
	TrustedProxies []string `env:"HOSTGUARD_TRUSTED_PROXIES" envSeparator:"," yaml:"trusted_proxies"`

	// TrustedHostPatterns restricts acceptable hosts. Entries are globs
	// ("*.example.com", "**.example.com") unless they start with '^',
	// in which case they are regular expressions matched against the whole
	// hostname; a trailing '$' is optional.
	TrustedHostPatterns []string `env:"HOSTGUARD_TRUSTED_HOST_PATTERNS" envSeparator:"," yaml:"trusted_host_patterns"`

	MaxHostLength int `env:"HOSTGUARD_MAX_HOST_LENGTH" envDefault:"253" yaml:"max_host_length"`

	// TrustForwardedHeaders is the master switch. When false, forwarded
	// values are never consulted regardless of TrustedProxies.
	TrustForwardedHeaders bool `env:"HOSTGUARD_TRUST_FORWARDED_HEADERS" yaml:"trust_forwarded_headers"`

	// ParseForwarded enables the RFC 7239 Forwarded header as a fallback
	// when the X-Forwarded-* headers are absent.
	ParseForwarded bool `env:"HOSTGUARD_PARSE_FORWARDED" envDefault:"true" yaml:"parse_forwarded"`

	// StripPort drops the port from resolved hosts.
	StripPort bool `env:"HOSTGUARD_STRIP_PORT" yaml:"strip_port"`
}

func (c Config) withDefaults() Config {
	if c.ForwardedProtoHeader == "" {
		c.ForwardedProtoHeader = DefaultForwardedProtoHeader
	}
	if c.ForwardedHostHeader == "" {
		c.ForwardedHostHeader = DefaultForwardedHostHeader
	}
	if c.MaxHostLength <= 0 {
		c.MaxHostLength = DefaultMaxHostLength
	}
	return c
}
