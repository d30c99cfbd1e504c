package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	fields := []string{
		FieldOwner, FieldRawName, FieldNormalized, FieldVendorID, FieldVendorName,
		FieldScore, FieldCategory, FieldConfidence, FieldBackend, FieldCount,
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		assert.NotEmpty(t, f)
		assert.False(t, seen[f], "duplicate field name %q", f)
		seen[f] = true
	}
}
