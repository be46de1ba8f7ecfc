package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNewMergeKeyNormalises(t *testing.T) {
	a := NewMergeKey("  Flour ", " G", nil)
	b := NewMergeKey("flour", "g", strPtr(""))
	assert.Equal(t, a, b)
	assert.Equal(t, a.String(), b.String())

	c := NewMergeKey("Flour", "g", strPtr(" Sifted "))
	assert.Equal(t, "sifted", c.Note)
}

func TestMergeKeyMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b MergeKey
		want bool
	}{
		{"nil and empty note", NewMergeKey("Flour", "g", nil), NewMergeKey("Flour", "g", strPtr("")), true},
		{"empty note is a wildcard", NewMergeKey("Flour", "g", nil), NewMergeKey("flour", "G", strPtr("sifted")), true},
		{"equal notes ignoring case", NewMergeKey("Flour", "g", strPtr("Organic")), NewMergeKey("Flour", "g", strPtr("organic ")), true},
		{"different notes", NewMergeKey("Flour", "g", strPtr("sifted")), NewMergeKey("Flour", "g", strPtr("organic")), false},
		{"different units", NewMergeKey("Flour", "g", nil), NewMergeKey("Flour", "kg", nil), false},
		{"different names", NewMergeKey("Flour", "g", nil), NewMergeKey("Sugar", "g", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Matches(tt.b))
			assert.Equal(t, tt.want, tt.b.Matches(tt.a), "symmetric")
		})
	}
}
