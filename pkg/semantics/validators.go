package semantics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && len(v) <= 254 && emailPattern.MatchString(v)
}

func validatePhone(v string) bool {
	digits := 0
	for _, r := range v {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || r == ' ':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

var postalPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-]{2,9}$`)

func validatePostal(v string) bool {
	return postalPattern.MatchString(strings.TrimSpace(v))
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// CanonicalDate reparses an accepted date value into the HTML date input
// wire format, 2006-01-02. The second return is false when no layout fits.
func CanonicalDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

func validateDate(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func validateNumber(v string) bool {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "$"))
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func validateName(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > 100 {
		return false
	}
	for _, r := range v {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' && r != '.' {
			return false
		}
	}
	return true
}

func validateFreeText(maxLen int) func(string) bool {
	return func(v string) bool {
		v = strings.TrimSpace(v)
		return v != "" && len(v) <= maxLen
	}
}

func validateNonEmpty(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && len(v) <= 500
}
