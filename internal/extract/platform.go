package extract

import (
	"strings"

	"github.com/sells-group/adphone/internal/model"
)

// platformRules maps a domain substring to its platform. Order matters: the
// first rule contained in the network location wins.
var platformRules = []struct {
	domain   string
	platform model.Platform
}{
	{"avito.ru", model.PlatformAvito},
	{"rabota.ru", model.PlatformRabota},
}

// DetectPlatform identifies the marketplace from the URL's network location
// (userinfo, host and port; never the path or query). The second return value
// is false when the URL has no network location or belongs to no supported
// marketplace.
func DetectPlatform(rawURL string) (model.Platform, bool) {
	loc := strings.ToLower(netloc(rawURL))
	if loc == "" {
		return "", false
	}
	for _, rule := range platformRules {
		if strings.Contains(loc, rule.domain) {
			return rule.platform, true
		}
	}
	return "", false
}

// netloc returns the text between "//" and the next "/", "?" or "#". It does
// not decode or validate anything, so a bad escape in the path or an odd port
// does not hide the host.
func netloc(rawURL string) string {
	rest := rawURL
	if i := strings.IndexByte(rest, ':'); i > 0 && isScheme(rest[:i]) {
		rest = rest[i+1:]
	}
	if !strings.HasPrefix(rest, "//") {
		return ""
	}
	rest = rest[2:]
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func isScheme(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
