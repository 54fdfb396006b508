package hostresolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// hostMatcher matches a sanitized hostname (no port).
type hostMatcher interface {
	Match(host string) bool
}

type regexpMatcher struct{ re *regexp.Regexp }

func (m regexpMatcher) Match(host string) bool { return m.re.MatchString(host) }

// allowList is empty when no patterns are configured, which allows any host.
type allowList []hostMatcher

func compilePatterns(patterns []string) (allowList, error) {
	list := make(allowList, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if expr, ok := strings.CutPrefix(p, "^"); ok {
			// Matched against the whole host, never a substring.
			if strings.HasSuffix(expr, "$") && !strings.HasSuffix(expr, `\$`) {
				expr = expr[:len(expr)-1]
			}
			re, err := regexp.Compile("^(?:" + expr + ")$")
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidHostPattern, p, err)
			}
			list = append(list, regexpMatcher{re: re})
			continue
		}
		// '.' is the separator: "*.example.com" covers one label,
		// "**.example.com" any depth.
		g, err := glob.Compile(strings.ToLower(p), '.')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidHostPattern, p, err)
		}
		list = append(list, g)
	}
	return list, nil
}

func (l allowList) allows(host string) bool {
	if len(l) == 0 {
		return true
	}
	for _, m := range l {
		if m.Match(host) {
			return true
		}
	}
	return false
}
