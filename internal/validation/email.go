package validation

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IsValidEmail reports whether s is a well-formed address. On top of the
// pattern it requires exactly one "@", a local part that neither starts nor
// ends with "." and a dotted domain that does not start or end with "." or
// "-". Consecutive dots are rejected anywhere.
func IsValidEmail(s string) bool {
	if s == "" || strings.Count(s, "@") != 1 {
		return false
	}

	local, domain, _ := strings.Cut(s, "@")
	if local == "" || strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}

	return emailPattern.MatchString(s)
}

// IsEmailComplete is the softer check used while the user is still typing:
// the address has an "@", a "." and a final label of at least two characters.
func IsEmailComplete(s string) bool {
	if !strings.Contains(s, "@") || !strings.Contains(s, ".") {
		return false
	}
	labels := strings.Split(s, ".")
	return len(labels[len(labels)-1]) >= 2
}
