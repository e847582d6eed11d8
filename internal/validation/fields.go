package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const dobLayout = "2006-01-02"

// Username validates a candidate username. Rules run in a fixed order
// and the first violation wins: no spaces, ASCII letters and digits
// only, not already taken. The taken callback lets the caller supply
// the uniqueness check without the validator knowing about storage.
func Username(username string, taken func(string) bool) *Error {
	if strings.Contains(username, " ") {
		return BadRequest("Username cannot contain spaces.")
	}
	if !isAlphanumeric(username) {
		return BadRequest("Username must contain only letters and numbers.")
	}
	if taken != nil && taken(username) {
		return Conflict("Username already taken.")
	}
	return nil
}

// Password validates a password: at least 8 characters, containing at
// least one uppercase letter and one digit. No maximum length and no
// character-set restriction beyond those two rules.
func Password(password string) *Error {
	if len(password) < 8 {
		return BadRequest("Password must contain a minimum of 8 characters.")
	}
	if !containsUpperAndDigit(password) {
		return BadRequest("Password must contain at least one of both uppercase characters and numbers.")
	}
	return nil
}

// Email validates the address shape only; no DNS or mailbox checks.
func Email(email string) *Error {
	if !emailPattern.MatchString(email) {
		return BadRequest("Email must be in correct email format. e.g. user@example.com")
	}
	return nil
}

// DateOfBirth validates a strict YYYY-MM-DD calendar date and enforces
// the 18-year minimum age against now. A subject born exactly 18 years
// before now passes; one day later fails. AddDate keeps the subtraction
// calendar-aware across leap years.
func DateOfBirth(dob string, now time.Time) *Error {
	birthday, err := time.Parse(dobLayout, dob)
	if err != nil {
		return BadRequest("Date of Birth must be in format: YYYY-MM-DD")
	}
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(-18, 0, 0)
	if birthday.After(cutoff) {
		return Forbidden("User must be at least 18 years old")
	}
	return nil
}

// Number validates a fixed-length numeric string: decimal digits only
// and exactly digits characters long. Used for card numbers (16) and
// payment amounts (3).
func Number(num string, digits int) *Error {
	if len(num) != digits || !isDigits(num) {
		return BadRequest(fmt.Sprintf("Number must contain %d numerical digits.", digits))
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// containsUpperAndDigit scans once and reports true as soon as both an
// uppercase letter and a digit have been seen.
func containsUpperAndDigit(s string) bool {
	var upperFound, digitFound bool
	for _, r := range s {
		if unicode.IsUpper(r) {
			upperFound = true
		} else if unicode.IsDigit(r) {
			digitFound = true
		}
		if upperFound && digitFound {
			return true
		}
	}
	return false
}
