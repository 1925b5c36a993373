package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	t.Run("accepts balanced checksum", func(t *testing.T) {
		assert.True(t, ValidID("000000018"))
		assert.True(t, ValidID("000000000"))
	})

	t.Run("rejects unbalanced checksum", func(t *testing.T) {
		assert.False(t, ValidID("123456789"))
		assert.False(t, ValidID("000000017"))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.False(t, ValidID(""))
		assert.False(t, ValidID("12345678"))
		assert.False(t, ValidID("1234567890"))
	})

	t.Run("rejects non-digits", func(t *testing.T) {
		assert.False(t, ValidID("00000001x"))
		assert.False(t, ValidID("abcdefghi"))
		assert.False(t, ValidID("00000 018"))
	})
}

// TestValidID_SingleDigitMutation verifies the checksum catches any single
// digit change: for each position of a valid identifier, all nine other
// digit values must fail.
func TestValidID_SingleDigitMutation(t *testing.T) {
	const valid = "000000018"

	for pos := 0; pos < len(valid); pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if valid[pos] == d {
				continue
			}
			mutated := valid[:pos] + string(d) + valid[pos+1:]
			assert.False(t, ValidID(mutated), "mutation %s at position %d should invalidate", mutated, pos)
		}
	}
}

// FuzzValidID verifies the checksum validator never panics and only ever
// accepts nine ASCII digits, whatever the input.
func FuzzValidID(f *testing.F) {
	f.Add("000000018")
	f.Add("123456789")
	f.Add("")
	f.Add("00000001x")
	f.Add("٠٠٠٠٠٠٠١٨") // non-ASCII digits must be rejected
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		if !ValidID(input) {
			return
		}
		if len(input) != 9 {
			t.Errorf("accepted input of length %d: %q", len(input), input)
		}
		for i := 0; i < len(input); i++ {
			if input[i] < '0' || input[i] > '9' {
				t.Errorf("accepted non-digit input: %q", input)
			}
		}
	})
}
