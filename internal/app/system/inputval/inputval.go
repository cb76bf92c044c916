// Package inputval validates the handful of field formats the application
// endpoints accept.
package inputval

import "regexp"

// Group size bounds for school tour applications (inclusive).
const (
	MinGroupSize = 1
	MaxGroupSize = 50
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\d+$`)
)

// ValidEmail reports whether s matches the basic address pattern.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPhone reports whether s consists only of digits.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// ValidGroupSize reports whether n falls within [MinGroupSize, MaxGroupSize].
func ValidGroupSize(n int) bool {
	return n >= MinGroupSize && n <= MaxGroupSize
}
