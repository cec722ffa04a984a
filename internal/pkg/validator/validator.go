package validator

import (
	"fmt"
	"strconv"
	"strings"
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidatePhone accepts international numbers only: a leading "+"
// followed by digits.
func (v *Validator) ValidatePhone(input string) error {
	phone := strings.TrimSpace(input)
	if !strings.HasPrefix(phone, "+") {
		return fmt.Errorf("phone number must start with +")
	}

	if len(phone) < 2 {
		return fmt.Errorf("phone number is too short")
	}

	for _, r := range phone[1:] {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone number must contain only digits after +")
		}
	}

	return nil
}

// ValidateCode accepts all-digit one-time codes.
func (v *Validator) ValidateCode(input string) error {
	code := strings.TrimSpace(input)
	if code == "" {
		return fmt.Errorf("code cannot be empty")
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("code must contain only digits")
		}
	}

	return nil
}

// ValidateChannelID parses the numeric channel id the admin passes to
// /setchannel, in the -100-prefixed form Telegram clients show.
func (v *Validator) ValidateChannelID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("channel id must be numeric, got %q", input)
	}

	if id == 0 {
		return 0, fmt.Errorf("channel id cannot be zero")
	}

	return id, nil
}

// ValidateHandle normalizes an @username argument.
func (v *Validator) ValidateHandle(input string) (string, error) {
	handle := strings.TrimSpace(input)
	if !strings.HasPrefix(handle, "@") {
		return "", fmt.Errorf("handle must start with @")
	}

	handle = strings.TrimPrefix(handle, "@")
	if handle == "" {
		return "", fmt.Errorf("handle cannot be empty")
	}

	return handle, nil
}
