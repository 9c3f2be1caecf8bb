package newsmaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("should describe a variant tag accessed without a language", func(t *testing.T) {
		err := NewWrongVarianceError("Value", NewVariantTag("NEWS_TITLE"))
		assert.Contains(t, err.Error(), "NEWS_TITLE")
		assert.Contains(t, err.Error(), "Value")
		assert.Contains(t, err.Error(), "language is required")
	})

	t.Run("should describe a shared tag set per language", func(t *testing.T) {
		err := NewWrongVarianceError("SetValueFor", NewTag("BACKGROUND_COLOR"))
		assert.Contains(t, err.Error(), "single shared value")
	})

	t.Run("should describe a preset value count mismatch", func(t *testing.T) {
		err := NewValidationError("event", NewVariantTag("NEWS_TITLE"), 2, 1)
		assert.Equal(t, `preset "event": tag NEWS_TITLE has 1 value(s), want 2`, err.Error())
	})

	t.Run("should describe an unknown section", func(t *testing.T) {
		assert.Equal(t, `unknown section "GARBAGE"`, NewUnknownSectionError("GARBAGE").Error())
	})

	t.Run("should describe a missing snapshot key with its section", func(t *testing.T) {
		err := NewMissingKeyError("NEWS", "template")
		assert.Contains(t, err.Error(), `section "NEWS"`)
		assert.Contains(t, err.Error(), `missing required key "template"`)
	})

	t.Run("should describe a free-form snapshot defect", func(t *testing.T) {
		err := NewCorruptSnapshotError("snapshot root must be an object keyed by section name")
		assert.Contains(t, err.Error(), "corrupt snapshot")
	})
}
