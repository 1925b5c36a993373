package patient

// ValidID reports whether id is a well-formed 9-digit national identifier.
// The check digit uses a weighted digit sum: digits at odd positions are
// doubled and, when the product exceeds 9, reduced by 9; the identifier is
// valid when the total is divisible by 10. Anything that is not exactly nine
// ASCII digits is invalid, never an error.
func ValidID(id string) bool {
	if len(id) != 9 {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}

	return sum%10 == 0
}
