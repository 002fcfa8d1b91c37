package util

import (
	"net/mail"
	"strings"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	maxEmailLength    = 254
	otpLength         = 6
)

// ValidateEmail reports whether the address is a plain RFC 5322 address
// of an acceptable length. Display names ("A <a@b.c>") are rejected.
func ValidateEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}

	parsed, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	return parsed.Address == email
}

// ValidatePassword enforces the password policy. The message is empty
// when the password is acceptable.
func ValidatePassword(password string) (bool, string) {
	if len(password) < minPasswordLength {
		return false, "Password must be at least 8 characters long"
	}

	if len(password) > maxPasswordLength {
		return false, "Password must be less than 128 characters"
	}

	return true, ""
}

// ValidateOTP reports whether the code is exactly six ASCII digits.
func ValidateOTP(otp string) bool {
	if len(otp) != otpLength {
		return false
	}

	for _, char := range otp {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}

// Required reports whether every value is non-empty after trimming.
func Required(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}

	return true
}
