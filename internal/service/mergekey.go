package service

import "github.com/pageza/grocerly/backend/internal/models"

// MergeKey is the normalized (name, unit, note) identity of something to buy.
type MergeKey struct {
	Name string
	Unit string
	Note string
}

// NewMergeKey trims and lower-cases every part. An absent note and an empty
// note normalize to the same value.
func NewMergeKey(name, unit string, note *string) MergeKey {
	k := MergeKey{
		Name: normalizePart(name),
		Unit: normalizePart(unit),
	}
	if note != nil {
		k.Note = normalizePart(*note)
	}
	return k
}

func normalizePart(s string) string {
	return models.NormalizeMergePart(s)
}

// Matches reports whether both keys describe the same grocery item. Names and
// units must be equal; an empty note on either side matches any note,
// otherwise the notes must be equal.
func (k MergeKey) Matches(other MergeKey) bool {
	if k.Name != other.Name || k.Unit != other.Unit {
		return false
	}
	return k.Note == "" || other.Note == "" || k.Note == other.Note
}

// String returns the exact key used to fold ingredient lines. Unlike Matches
// it keeps notes distinct, so "Flour g" and "Flour g sifted" fold separately
// and are reconciled later by the merge resolver.
func (k MergeKey) String() string {
	return k.Name + "\x1f" + k.Unit + "\x1f" + k.Note
}
