package sanitizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone parses phone as dialled from defaultRegion and returns it
// in E.164 form. Numbers carrying their own +country prefix ignore the
// region.
func NormalizePhone(phone, defaultRegion string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPhone)
	}

	parsed, err := phonenumbers.Parse(phone, strings.ToUpper(defaultRegion))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsPossibleNumber(parsed) {
		return "", fmt.Errorf("%w: %q has an impossible length", ErrInvalidPhone, phone)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
