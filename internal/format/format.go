// Package format holds display formatting and input validation helpers
// shared by the exporters and the persistence layer: Polish money
// formatting, NIP checksum validation and filename sanitizing.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FmtMoneyPlain formats a monetary value the Polish way: space as the
// thousands separator, comma as the decimal separator.
// 1234.56 becomes "1 234,56".
func FmtMoneyPlain(value float64) string {
	s := fmt.Sprintf("%.2f", value)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}

// FmtMoney formats a monetary value with the currency suffix, e.g.
// "1 234,56 zł".
func FmtMoney(value float64) string {
	return FmtMoneyPlain(value) + " zł"
}

var floatTextRe = regexp.MustCompile(`^\d+(\.\d{0,3})?$`)

// IsValidFloatText reports whether s is acceptable as an in-progress
// numeric entry: empty, a lone sign or dot, or digits with up to three
// decimals. A comma counts as the decimal separator.
func IsValidFloatText(s string) bool {
	if s == "" || s == "-" || s == "." {
		return true
	}
	return floatTextRe.MatchString(strings.ReplaceAll(s, ",", "."))
}

// nipWeights are the checksum weights for the first nine NIP digits.
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// ValidNIP validates a Polish tax identification number. Dashes and
// spaces are ignored; the number must be ten digits whose weighted
// checksum mod 11 matches the final digit (a checksum of 10 is invalid).
func ValidNIP(nip string) bool {
	clean := strings.NewReplacer("-", "", " ", "").Replace(nip)
	if len(clean) != 10 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		d := clean[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += int(d-'0') * nipWeights[i]
	}
	last := clean[9]
	if last < '0' || last > '9' {
		return false
	}
	sum %= 11
	if sum == 10 {
		return false
	}
	return sum == int(last-'0')
}

var unsafeFilenameRe = regexp.MustCompile(`[^\p{L}\p{N}\-._]`)

// SafeFilename turns an arbitrary title into a filesystem-safe name:
// trimmed, spaces replaced with underscores, everything outside
// letters, digits, dash, dot and underscore dropped, truncated to
// maxLen runes. maxLen <= 0 means the default of 140.
func SafeFilename(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 140
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameRe.ReplaceAllString(s, "")
	if utf8.RuneCountInString(s) > maxLen {
		runes := []rune(s)
		s = string(runes[:maxLen])
	}
	return s
}
