package newsmaker

// Preset is a named bundle of default tag values, a template and a target
// section, used to pre-fill a field. For a language-invariant tag the
// value list holds exactly one entry; for a language-variant tag it holds
// one entry per configured language, in configuration order. An empty
// SectionTag means the field goes to (or returns to) the default section.
type Preset struct {
	Name       string
	Template   string
	SectionTag string
	Parameters map[Tag][]string
}

// Apply copies the preset's values, template and section onto the field.
// Values for tags the preset defines are overwritten; values for tags it
// does not mention are kept. Validation runs up front: if any
// language-variant parameter does not carry exactly one value per
// configured language, a ValidationError is returned and the field is
// left unchanged. Applying the same preset twice is idempotent.
func (p *Preset) Apply(f *Field) error {
	// A field without a format has no language list; any per-language
	// parameter then fails validation instead of panicking.
	var languages []string
	if f.format != nil {
		languages = f.format.Languages
	}
	for tag, values := range p.Parameters {
		if tag.LanguageVariant {
			if len(values) != len(languages) {
				return NewValidationError(p.Name, tag, len(languages), len(values))
			}
		} else if len(values) != 1 {
			return NewValidationError(p.Name, tag, 1, len(values))
		}
	}

	for tag, values := range p.Parameters {
		if tag.LanguageVariant {
			for i, language := range languages {
				_ = f.SetValueFor(tag, language, values[i])
			}
		} else {
			_ = f.SetValue(tag, values[0])
		}
	}

	f.Template = p.Template
	f.Section = p.TargetSection()
	f.emit(PresetAppliedEvent{Field: f, Preset: p.Name})
	return nil
}

// TargetSection is the section the preset sends a field to: its section
// tag, or the default section when none is set.
func (p *Preset) TargetSection() string {
	if p.SectionTag == "" {
		return DefaultSection
	}
	return p.SectionTag
}

func (p *Preset) String() string {
	return p.Name
}
