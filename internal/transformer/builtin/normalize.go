package builtin

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText canonicalizes free text: lowercase, surrounding whitespace
// trimmed, internal whitespace runs (NBSP included) collapsed to one space.
// The empty string is the missing marker and passes through unchanged.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeStrict is NormalizeText plus a character filter: accents are
// folded (NFD, drop Mn, NFC) and every rune that is not a-z, 0-9 or space
// becomes a separator. Used for join keys, so both datasets must go through
// the same function.
func NormalizeStrict(s string) string {
	if s == "" {
		return s
	}
	s = foldAccents(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !keep {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func foldAccents(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// HasEdgeSpace reports whether s starts or ends with ASCII whitespace
// (space, tab, LF, CR). Callers use it to skip TrimSpace allocations on the
// common clean path.
func HasEdgeSpace(s string) bool {
	if s == "" {
		return false
	}
	return isASCIISpace(s[0]) || isASCIISpace(s[len(s)-1])
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
