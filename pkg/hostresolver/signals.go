package hostresolver

// Signals is the minimal, read-only view of an inbound request the resolver
// needs. An empty string means the value is absent.
type Signals interface {
	// IsTLS reports whether the transport itself was TLS.
	IsTLS() bool
	// PeerAddr is the immediate peer address, "ip" or "ip:port".
	PeerAddr() string
	// ForwardedProto is the raw forwarded protocol header value. Client controlled.
	ForwardedProto() string
	// ForwardedHost is the raw forwarded host header value. Client controlled.
	ForwardedHost() string
	// HostHeader is the raw Host header value. Client controlled.
	HostHeader() string
	// ServerName is the operator-configured name of this server.
	ServerName() string
}

// RequestSignals is a plain-value Signals implementation.
type RequestSignals struct {
	Peer            string
	XForwardedProto string
	XForwardedHost  string
	Host            string
	Server          string
	TLS             bool
}

var _ Signals = RequestSignals{}

func (s RequestSignals) IsTLS() bool            { return s.TLS }
func (s RequestSignals) PeerAddr() string       { return s.Peer }
func (s RequestSignals) ForwardedProto() string { return s.XForwardedProto }
func (s RequestSignals) ForwardedHost() string  { return s.XForwardedHost }
func (s RequestSignals) HostHeader() string     { return s.Host }
func (s RequestSignals) ServerName() string     { return s.Server }
