package newsmaker

import "strings"

// Field is one renderable content unit of the document: a template, the
// name of the section that owns it, and the tag values substituted into
// the template. Language-invariant values are shared; language-variant
// values are kept strictly per language and never merged. A field does not
// know its position within its section, only the section name.
type Field struct {
	Section  string
	Template string

	invariant map[Tag]string
	variant   map[string]map[Tag]string

	format *Format
	sink   EventSink
}

// NewField creates an empty field in the default section, using the
// format's default field template.
func NewField(format *Format, opts ...func(*Field)) *Field {
	f := &Field{
		Section:   DefaultSection,
		invariant: map[Tag]string{},
		variant:   map[string]map[Tag]string{},
		format:    format,
	}
	if format != nil {
		f.Template = format.DefaultFieldTemplate
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// WithFieldSink attaches an event sink that receives a ValueChangedEvent
// for every value mutation.
func WithFieldSink(sink EventSink) func(*Field) {
	return func(f *Field) { f.sink = sink }
}

// SetValue sets the shared value of a language-invariant tag.
func (f *Field) SetValue(tag Tag, value string) error {
	if tag.LanguageVariant {
		return NewWrongVarianceError("SetValue", tag)
	}
	f.invariant[tag] = value
	f.emit(ValueChangedEvent{Field: f, Tag: tag, Value: value})
	return nil
}

// SetValueFor sets the value of a language-variant tag for one language.
// The per-language map is created on first use.
func (f *Field) SetValueFor(tag Tag, language, value string) error {
	if !tag.LanguageVariant {
		return NewWrongVarianceError("SetValueFor", tag)
	}
	if f.variant[language] == nil {
		f.variant[language] = map[Tag]string{}
	}
	f.variant[language][tag] = value
	f.emit(ValueChangedEvent{Field: f, Tag: tag, Language: language, Value: value})
	return nil
}

// Value returns the shared value of a language-invariant tag.
func (f *Field) Value(tag Tag) (string, error) {
	if tag.LanguageVariant {
		return "", NewWrongVarianceError("Value", tag)
	}
	return f.invariant[tag], nil
}

// ValueFor returns the value of a tag for one language. Reading a
// language-invariant tag through ValueFor is permitted and ignores the
// language, so a caller can bind every tag of a field uniformly.
func (f *Field) ValueFor(tag Tag, language string) (string, error) {
	if !tag.LanguageVariant {
		return f.invariant[tag], nil
	}
	return f.variant[language][tag], nil
}

// Tags returns every tag that currently has a value on the field,
// language-invariant tags first.
func (f *Field) Tags() []Tag {
	tags := make([]Tag, 0, len(f.invariant))
	for t := range f.invariant {
		tags = append(tags, t)
	}
	seen := map[Tag]bool{}
	for _, perLanguage := range f.variant {
		for t := range perLanguage {
			seen[t] = true
		}
	}
	variant := make([]Tag, 0, len(seen))
	for t := range seen {
		variant = append(variant, t)
	}
	sortTagsForSubstitution(tags)
	sortTagsForSubstitution(variant)
	return append(tags, variant...)
}

// Render builds the field's markup for one language: every invariant
// tag's placeholder is replaced with its value, and every variant tag's
// placeholder with its value for that language. Both maps are substituted
// in a single pass so the longest-name-first order holds across them; an
// invariant tag whose name prefixes a variant tag's name (or vice versa)
// cannot consume the longer placeholder. Placeholders of tags that have
// no value are left as literal text; absent optional tags are meant to
// surface rather than vanish silently. The image pseudo-tag is the one
// exception, expanded last by expandImage.
func (f *Field) Render(language string) string {
	values := make(map[Tag]string, len(f.invariant)+len(f.variant[language]))
	for t, v := range f.invariant {
		values[t] = v
	}
	for t, v := range f.variant[language] {
		values[t] = v
	}
	return f.expandImage(replaceTags(f.Template, values))
}

// expandImage resolves the image pseudo-tag. The user never fills
// @NEWS_IMAGE directly; when the image URL value is empty the placeholder
// collapses to nothing, otherwise it expands to the format's image
// fragment with the URL substituted in. A field with no URL value at all
// keeps the literal placeholder, like any other absent tag.
func (f *Field) expandImage(s string) string {
	url, ok := f.invariant[NewTag(ImageURLTag)]
	if !ok {
		return s
	}
	placeholder := "@" + ImageTag
	if url == "" {
		return strings.ReplaceAll(s, placeholder, "")
	}
	var fragment string
	if f.format != nil {
		fragment = f.format.ImageFragment
	}
	fragment = strings.ReplaceAll(fragment, "@"+ImageURLTag, url)
	return strings.ReplaceAll(s, placeholder, fragment)
}

func (f *Field) emit(ev Event) {
	if f.sink != nil {
		f.sink.OnEvent(ev)
	}
}

// replaceTags substitutes every placeholder that has a value, longest tag
// name first so that a tag whose name prefixes another cannot shadow it.
func replaceTags(s string, values map[Tag]string) string {
	tags := make([]Tag, 0, len(values))
	for t := range values {
		tags = append(tags, t)
	}
	sortTagsForSubstitution(tags)
	for _, t := range tags {
		s = strings.ReplaceAll(s, t.Placeholder(), values[t])
	}
	return s
}
