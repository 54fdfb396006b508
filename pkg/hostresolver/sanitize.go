package hostresolver

import (
	"net"
	"net/netip"
	"strconv"
	"strings"
)

const maxLabelLength = 63

// SanitizeHost validates a raw host[:port] value and returns its normalized
// hostname and port. The hostname is lowercased with one trailing dot removed;
// IPv6 literals are returned in bracketed form. maxLen bounds the hostname;
// values <= 0 use DefaultMaxHostLength.
//
// Only letters, digits, '.', '-' and ':' are accepted, plus the brackets of an
// IPv6 literal. Anything carrying a scheme, path, credentials, whitespace or
// control characters is rejected.
func SanitizeHost(raw string, maxLen int) (host, port string, err error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxHostLength
	}

	v := strings.TrimSpace(raw)
	if v == "" {
		return "", "", ErrEmptyHost
	}
	// Brackets plus ":65535" on top of the hostname.
	if len(v) > maxLen+8 {
		return "", "", ErrHostTooLong
	}
	if !validHostChars(v) {
		return "", "", ErrInvalidHostChar
	}

	host, port, err = splitHostPort(v)
	if err != nil {
		return "", "", err
	}

	if strings.HasPrefix(host, "[") {
		return host, port, nil
	}

	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return "", "", ErrEmptyHost
	}
	if len(host) > maxLen {
		return "", "", ErrHostTooLong
	}
	if err := validLabels(host); err != nil {
		return "", "", err
	}
	return host, port, nil
}

// JoinHostPort reassembles a sanitized host and port.
func JoinHostPort(host, port string) string {
	if port == "" {
		return host
	}
	return net.JoinHostPort(strings.Trim(host, "[]"), port)
}

func validHostChars(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '-', c == ':', c == '[', c == ']':
		default:
			return false
		}
	}
	return true
}

// splitHostPort separates host and port explicitly. Unbracketed values with
// more than one colon are ambiguous and rejected.
func splitHostPort(v string) (host, port string, err error) {
	if strings.HasPrefix(v, "[") {
		end := strings.IndexByte(v, ']')
		if end < 0 {
			return "", "", ErrInvalidHost
		}
		addr, perr := netip.ParseAddr(v[1:end])
		if perr != nil || !addr.Is6() || addr.Zone() != "" {
			return "", "", ErrInvalidHost
		}
		rest := v[end+1:]
		if rest != "" {
			if rest[0] != ':' {
				return "", "", ErrInvalidHost
			}
			if port, err = validPort(rest[1:]); err != nil {
				return "", "", err
			}
		}
		return "[" + addr.String() + "]", port, nil
	}

	if strings.ContainsAny(v, "[]") {
		return "", "", ErrInvalidHost
	}

	switch strings.Count(v, ":") {
	case 0:
		return v, "", nil
	case 1:
		h, p, _ := strings.Cut(v, ":")
		if port, err = validPort(p); err != nil {
			return "", "", err
		}
		return h, port, nil
	default:
		return "", "", ErrInvalidHost
	}
}

func validPort(p string) (string, error) {
	if p == "" || len(p) > 5 {
		return "", ErrInvalidPort
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 1 || n > 65535 {
		return "", ErrInvalidPort
	}
	return strconv.Itoa(n), nil
}

func validLabels(host string) error {
	for label := range strings.SplitSeq(host, ".") {
		if label == "" || len(label) > maxLabelLength {
			return ErrInvalidLabel
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return ErrInvalidLabel
		}
	}
	return nil
}
