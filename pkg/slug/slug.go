package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength keeps slugs usable as a single DNS label.
const DefaultMaxLength = 63

const separator = '-'

// Option configures the slug generation behavior.
type Option func(*config)

type config struct {
	maxLength     int
	customReplace map[string]string
	suffixLength  int
}

// MaxLength sets the maximum length of the generated slug. Values outside
// 1..DefaultMaxLength are ignored.
func MaxLength(n int) Option {
	return func(c *config) {
		if n > 0 && n <= DefaultMaxLength {
			c.maxLength = n
		}
	}
}

// CustomReplace sets custom string replacements to apply before slugification.
// For example: {"&": "and", "@": "at"}
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) {
		c.customReplace = replacements
	}
}

// WithSuffix appends a random lowercase alphanumeric suffix, for retrying
// after a slug collision. Example: "acme-travel-x7g3k2" (length 6).
func WithSuffix(length int) Option {
	return func(c *config) {
		c.suffixLength = max(length, 0)
	}
}

// Make turns a display name into a lowercase DNS-safe slug: diacritics are
// folded to ASCII, every other run of non-alphanumerics becomes a single
// hyphen, and the result never starts or ends with a hyphen. Make returns ""
// when nothing usable remains.
func Make(s string, opts ...Option) string {
	cfg := &config{maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(cfg)
	}

	for old, repl := range cfg.customReplace {
		s = strings.ReplaceAll(s, old, " "+repl+" ")
	}

	var b strings.Builder
	b.Grow(len(s))
	lastWasSep := true
	for _, r := range fold(s) {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasSep = false
			continue
		}
		if !lastWasSep {
			b.WriteRune(separator)
			lastWasSep = true
		}
	}
	result := strings.Trim(b.String(), string(separator))

	limit := cfg.maxLength
	if cfg.suffixLength > 0 {
		limit -= min(cfg.suffixLength, cfg.maxLength) + 1
	}
	result = truncate(result, limit)

	if cfg.suffixLength == 0 {
		return result
	}
	suffix := randomSuffix(min(cfg.suffixLength, cfg.maxLength))
	if result == "" {
		return suffix
	}
	return result + string(separator) + suffix
}

// fold decomposes s and drops combining marks, so "Café Ñandú" becomes
// "Cafe Nandu". A few letters have no decomposition and are mapped by hand.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return specialLetters.Replace(out)
}

var specialLetters = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D",
)

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		s = s[:n]
	}
	return strings.TrimRight(s, string(separator))
}

func randomSuffix(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		for i := range b {
			b[i] = charset[i%len(charset)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}
