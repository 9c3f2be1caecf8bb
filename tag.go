package newsmaker

import (
	"sort"
	"strings"
)

// Tag identifies one replaceable part of a template. A tag is either
// language-invariant (one value shared by every language) or
// language-variant (one value per configured language). Identity is by
// name; the variance flag travels with the value so that new tags can be
// introduced from configuration or snapshots without touching the engine.
type Tag struct {
	Name            string
	LanguageVariant bool
}

// NewTag returns a language-invariant tag.
func NewTag(name string) Tag {
	return Tag{Name: name}
}

// NewVariantTag returns a language-variant tag.
func NewVariantTag(name string) Tag {
	return Tag{Name: name, LanguageVariant: true}
}

// Placeholder is the literal substring substituted in templates,
// "@" followed by the tag name.
func (t Tag) Placeholder() string {
	return "@" + t.Name
}

// Label is the human-readable form of the tag name, lower-cased with
// separators turned into spaces. Used for labeling inputs, never for
// substitution.
func (t Tag) Label() string {
	return strings.ReplaceAll(strings.ToLower(t.Name), "_", " ")
}

// LongText reports whether the tag holds long-form text and should be
// edited in a multi-line input. Purely a UI hint.
func (t Tag) LongText() bool {
	return strings.Contains(t.Name, "DESCRIPTION")
}

func (t Tag) String() string {
	return t.Placeholder()
}

// sortTagsForSubstitution orders tags so that longer names are replaced
// first. A tag whose name is a proper prefix of another (NEWS_IMAGE vs
// NEWS_IMAGE_URL) can then never consume the longer tag's placeholder.
func sortTagsForSubstitution(tags []Tag) {
	sort.Slice(tags, func(i, j int) bool {
		if len(tags[i].Name) != len(tags[j].Name) {
			return len(tags[i].Name) > len(tags[j].Name)
		}
		return tags[i].Name < tags[j].Name
	})
}
