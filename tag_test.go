package newsmaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag(t *testing.T) {
	t.Run("should derive the placeholder form", func(t *testing.T) {
		assert.Equal(t, "@NEWS_TITLE", NewVariantTag("NEWS_TITLE").Placeholder())
	})

	t.Run("should derive a human-readable label", func(t *testing.T) {
		assert.Equal(t, "news detail label", NewVariantTag("NEWS_DETAIL_LABEL").Label())
	})

	t.Run("should mark description tags as long text", func(t *testing.T) {
		assert.True(t, NewVariantTag("NEWS_DESCRIPTION").LongText())
		assert.False(t, NewVariantTag("NEWS_TITLE").LongText())
	})

	t.Run("should order substitution longest name first", func(t *testing.T) {
		tags := []Tag{
			NewTag("NEWS_IMAGE"),
			NewTag("NEWS_IMAGE_URL"),
			NewVariantTag("NEWS_TITLE"),
		}
		sortTagsForSubstitution(tags)
		assert.Equal(t, "NEWS_IMAGE_URL", tags[0].Name)
		assert.Equal(t, "NEWS_IMAGE", tags[1].Name)
		assert.Equal(t, "NEWS_TITLE", tags[2].Name)
	})
}
