package host

import (
	"net/url"
	"strings"
	"sync"
)

var (
	schemeOnce sync.Once
	schemes    map[string]bool

	// Swapped by tests.
	probeSchemes = defaultSchemeProbe
)

// SupportedSchemes reports which URL schemes the host can open. The probe
// runs at most once per process lifetime; the result is cached without
// invalidation.
func SupportedSchemes() map[string]bool {
	schemeOnce.Do(func() {
		schemes = probeSchemes()
	})
	return schemes
}

// IsAccessibleURL reports whether the URL can be opened by the host. URLs
// with unsupported or missing schemes fall back to the cached HTML render.
func IsAccessibleURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return false
	}
	return SupportedSchemes()[strings.ToLower(u.Scheme)]
}

func defaultSchemeProbe() map[string]bool {
	if _, err := openerCommand(); err != nil {
		return map[string]bool{}
	}
	return map[string]bool{
		"http":  true,
		"https": true,
		"file":  true,
	}
}
