package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	t.Run("tolerates formatting characters", func(t *testing.T) {
		assert.True(t, ValidPhone("050-123-4567"))
		assert.True(t, ValidPhone("(050) 123 4567"))
		assert.True(t, ValidPhone("0501234567"))
	})

	t.Run("accepts landline prefixes", func(t *testing.T) {
		assert.True(t, ValidPhone("02-1234567"))
		assert.True(t, ValidPhone("031234567"))
		assert.True(t, ValidPhone("041234567"))
		assert.True(t, ValidPhone("081234567"))
		assert.True(t, ValidPhone("091234567"))
	})

	t.Run("accepts all mobile prefixes", func(t *testing.T) {
		for _, second := range "0123456789" {
			number := "05" + string(second) + "1234567"
			assert.True(t, ValidPhone(number), "expected %s to be valid", number)
		}
	})

	t.Run("accepts VoIP prefixes 71-79 only", func(t *testing.T) {
		assert.True(t, ValidPhone("0721234567"))
		assert.True(t, ValidPhone("0791234567"))
		assert.False(t, ValidPhone("0701234567"))
	})

	t.Run("rejects missing leading zero", func(t *testing.T) {
		assert.False(t, ValidPhone("1234567"))
		assert.False(t, ValidPhone("501234567"))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.False(t, ValidPhone("02-123456"))
		assert.False(t, ValidPhone("02-12345678"))
		assert.False(t, ValidPhone("050-123-456"))
		assert.False(t, ValidPhone("050-123-45678"))
	})

	t.Run("rejects unknown prefixes", func(t *testing.T) {
		assert.False(t, ValidPhone("011234567"))
		assert.False(t, ValidPhone("061234567"))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		assert.False(t, ValidPhone(""))
		assert.False(t, ValidPhone("---"))
	})
}
