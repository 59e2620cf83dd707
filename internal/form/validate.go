package form

import (
	"regexp"
	"strings"
	"time"
)

// Validation messages surfaced inline next to a field. The wording is
// part of the site's UX copy and is asserted by tests.
const (
	MsgRequired             = "This field is required"
	MsgInvalidEmail         = "Please enter a valid email address"
	MsgInvalidPhone         = "Please enter a valid phone number"
	MsgInvalidDate          = "Please enter a valid date"
	MsgPastDate             = "Date cannot be in the past"
	MsgCheckoutAfterCheckin = "Check-out date must be after check-in date"
)

// Result is the outcome of validating a single field value. It is
// ephemeral: recomputed on every validation pass, never persisted.
type Result struct {
	Valid   bool
	Message string
}

var (
	valid = Result{Valid: true}

	// Light email shape check: something@something.tld with no
	// whitespace and exactly one @. Full RFC 5322 parsing buys nothing
	// here; the authoritative check is the provider bouncing mail.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// International-leaning phone shape: optional leading +, then 7 to
	// 15 digits, not starting with zero. Business policy, not a
	// standard; overridable via SetPhonePattern.
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)
)

// SetPhonePattern replaces the phone validation pattern. Call before any
// validation starts; the pattern is not synchronized.
func SetPhonePattern(re *regexp.Regexp) {
	phonePattern = re
}

const dateLayout = "2006-01-02"

// Validate checks a single field value. Rules apply in order and the
// first failure wins; a blank optional field is always valid.
func Validate(ft FieldType, value string, required bool) Result {
	trimmed := strings.TrimSpace(value)

	if required && trimmed == "" {
		return Result{Message: MsgRequired}
	}
	if trimmed == "" {
		return valid
	}

	switch ft {
	case FieldEmail:
		if !emailPattern.MatchString(trimmed) {
			return Result{Message: MsgInvalidEmail}
		}
	case FieldPhone:
		compact := strings.ReplaceAll(trimmed, " ", "")
		if !phonePattern.MatchString(compact) {
			return Result{Message: MsgInvalidPhone}
		}
	case FieldDate:
		return validateDate(trimmed, time.Now())
	}

	return valid
}

// validateDate rejects dates strictly before the current calendar day.
// Today itself is a valid check-in date.
func validateDate(value string, now time.Time) Result {
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return Result{Message: MsgInvalidDate}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if d.Before(today) {
		return Result{Message: MsgPastDate}
	}
	return valid
}

// ValidateStayDates enforces the cross-field ordering rule: when both
// dates are present and parseable, checkout must be strictly after
// checkin. Missing or malformed dates are some other rule's problem.
func ValidateStayDates(checkin, checkout string) Result {
	in, errIn := time.ParseInLocation(dateLayout, strings.TrimSpace(checkin), time.Local)
	out, errOut := time.ParseInLocation(dateLayout, strings.TrimSpace(checkout), time.Local)
	if errIn != nil || errOut != nil {
		return valid
	}
	if !out.After(in) {
		return Result{Message: MsgCheckoutAfterCheckin}
	}
	return valid
}
