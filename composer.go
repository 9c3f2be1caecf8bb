package newsmaker

import "strings"

// Composer resolves the document-level pass of the two-level substitution:
// it replaces section placeholders of the form @SECTION#LANGUAGE in the
// base template with each section's rendered fields. It never looks inside
// a field's template; the field-level pass belongs to Field.Render. The
// two placeholder syntaxes are disjoint, so no field tag can collide with
// a section placeholder.
type Composer struct {
	format *Format
	reg    *SectionRegistry
}

// NewComposer returns a composer over the given format and registry.
func NewComposer(format *Format, reg *SectionRegistry) *Composer {
	return &Composer{format: format, reg: reg}
}

// Compose builds the final document. For every configured language and
// registered section, each occurrence of the section's placeholder is
// replaced with the section's concatenated field markup, indented to
// match the leading whitespace of the placeholder's line. Sections with
// zero fields resolve to the empty string, so any wrapper markup must
// live in the base template itself. Compose is a pure read over current
// field state.
func (c *Composer) Compose() string {
	out := c.format.Base
	for _, language := range c.format.Languages {
		for _, section := range c.reg.Sections() {
			placeholder := SectionPlaceholder(section, language)
			rendered := c.reg.Render(section, language)
			out = replaceIndented(out, placeholder, rendered)
		}
	}
	return out
}

// SectionPlaceholder returns the document-level placeholder for a section
// in a language: "@" + UPPER_SECTION + "#" + UPPER_LANGUAGE.
func SectionPlaceholder(section, language string) string {
	return "@" + strings.ToUpper(section) + "#" + strings.ToUpper(language)
}

// replaceIndented replaces every occurrence of placeholder in s with
// content, prepending the leading whitespace of the occurrence's line to
// every content line after the first. The scan continues after each
// inserted replacement, so content is never re-expanded.
func replaceIndented(s, placeholder, content string) string {
	var sb strings.Builder
	for {
		i := strings.Index(s, placeholder)
		if i < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:i])
		sb.WriteString(indentLines(content, lineIndent(s, i)))
		s = s[i+len(placeholder):]
	}
}

// lineIndent returns the leading whitespace of the line containing
// position pos.
func lineIndent(s string, pos int) string {
	start := strings.LastIndexByte(s[:pos], '\n') + 1
	end := start
	for end < pos && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	return s[start:end]
}

// indentLines prepends indent to every line of content after the first;
// the first line lands at the placeholder's own column.
func indentLines(content, indent string) string {
	if indent == "" || !strings.Contains(content, "\n") {
		return content
	}
	return strings.ReplaceAll(content, "\n", "\n"+indent)
}
