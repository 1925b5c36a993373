package patient

import (
	"regexp"
	"strings"
)

// domesticPhonePattern matches a cleaned domestic number: a leading zero,
// then an area prefix (2/3/4/8/9 landline, 5X mobile, 7[1-9] VoIP), then
// exactly seven subscriber digits.
var domesticPhonePattern = regexp.MustCompile(`^0(2|3|4|8|9|5[0-9]|7[1-9])[0-9]{7}$`)

// ValidPhone reports whether phone is an accepted domestic number. Formatting
// characters (spaces, dashes, parentheses) are stripped before matching, so
// "050-123-4567" and "0501234567" are equivalent.
func ValidPhone(phone string) bool {
	if phone == "" {
		return false
	}

	var b strings.Builder
	b.Grow(len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			b.WriteByte(phone[i])
		}
	}

	return domesticPhonePattern.MatchString(b.String())
}
