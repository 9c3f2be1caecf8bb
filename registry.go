package newsmaker

import "strings"

// SectionRegistry groups fields by section name and owns their rendering
// order. The registry is pre-populated at configuration-load time with the
// default section plus every preset's section tag; fields can only ever be
// assigned to a section that exists, never to arbitrary user text.
type SectionRegistry struct {
	format   *Format
	order    []string
	sections map[string][]*Field
	sink     EventSink
}

// NewSectionRegistry creates a registry for the given format, registering
// the default section and every preset section tag, in configuration
// order.
func NewSectionRegistry(format *Format, opts ...func(*SectionRegistry)) *SectionRegistry {
	r := &SectionRegistry{
		format:   format,
		sections: map[string][]*Field{},
	}
	for _, o := range opts {
		o(r)
	}
	r.register(DefaultSection)
	if format != nil {
		for _, p := range format.Presets {
			if p.SectionTag != "" {
				r.register(p.SectionTag)
			}
		}
	}
	return r
}

// WithRegistrySink attaches an event sink that receives assignment, move,
// reassignment and removal events.
func WithRegistrySink(sink EventSink) func(*SectionRegistry) {
	return func(r *SectionRegistry) { r.sink = sink }
}

// register adds a section if it is not known yet, preserving insertion
// order. Not exported: sections come from configuration and snapshots
// only.
func (r *SectionRegistry) register(name string) {
	if _, ok := r.sections[name]; ok {
		return
	}
	r.order = append(r.order, name)
	r.sections[name] = nil
}

// Sections returns the registered section names in registration order.
func (r *SectionRegistry) Sections() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Fields returns the fields of a section in rendering order.
func (r *SectionRegistry) Fields(section string) []*Field {
	fields := r.sections[section]
	out := make([]*Field, len(fields))
	copy(out, fields)
	return out
}

// Len returns the total number of fields across all sections.
func (r *SectionRegistry) Len() int {
	n := 0
	for _, fields := range r.sections {
		n += len(fields)
	}
	return n
}

// Assign appends a field to a section and records the section on the
// field. It fails with an UnknownSectionError if the section was never
// registered.
func (r *SectionRegistry) Assign(f *Field, section string) error {
	if _, ok := r.sections[section]; !ok {
		return NewUnknownSectionError(section)
	}
	r.sections[section] = append(r.sections[section], f)
	f.Section = section
	r.emit(FieldAssignedEvent{Field: f, Section: section})
	return nil
}

// Reassign removes a field from its current section and appends it to
// newSection, where it becomes last.
func (r *SectionRegistry) Reassign(f *Field, newSection string) error {
	if _, ok := r.sections[newSection]; !ok {
		return NewUnknownSectionError(newSection)
	}
	old := f.Section
	r.detach(f, old)
	r.sections[newSection] = append(r.sections[newSection], f)
	f.Section = newSection
	r.emit(FieldReassignedEvent{Field: f, From: old, To: newSection})
	return nil
}

// Move reorders a field within its section by delta positions. The target
// index is clamped to the list bounds; a move that does not change the
// index is a no-op.
func (r *SectionRegistry) Move(f *Field, delta int) {
	fields := r.sections[f.Section]
	start := indexOf(fields, f)
	if start < 0 {
		return
	}
	target := clamp(start+delta, 0, len(fields)-1)
	if target == start {
		return
	}
	fields = append(fields[:start], fields[start+1:]...)
	fields = append(fields[:target], append([]*Field{f}, fields[target:]...)...)
	r.sections[f.Section] = fields
	r.emit(FieldMovedEvent{Field: f, Section: f.Section, From: start, To: target})
}

// Remove detaches a field from its section.
func (r *SectionRegistry) Remove(f *Field) {
	section := f.Section
	if r.detach(f, section) {
		r.emit(FieldRemovedEvent{Field: f, Section: section})
	}
}

// ApplyPreset applies a preset to a field and moves the field to the
// preset's target section in one step. The field is untouched when the
// preset fails validation or targets an unregistered section.
func (r *SectionRegistry) ApplyPreset(f *Field, p *Preset) error {
	target := p.TargetSection()
	if _, ok := r.sections[target]; !ok {
		return NewUnknownSectionError(target)
	}
	// Apply rewrites f.Section to the target, so remember where the field
	// currently lives before it runs.
	old := f.Section
	if err := p.Apply(f); err != nil {
		return err
	}
	if target != old {
		r.detach(f, old)
		r.sections[target] = append(r.sections[target], f)
		r.emit(FieldReassignedEvent{Field: f, From: old, To: target})
	}
	return nil
}

// Render concatenates the rendered markup of every field in the section,
// in list order, with no separator. An unknown or empty section renders
// as the empty string.
func (r *SectionRegistry) Render(section, language string) string {
	var sb strings.Builder
	for _, f := range r.sections[section] {
		sb.WriteString(f.Render(language))
	}
	return sb.String()
}

// detach removes the field from the named section's list. The section is
// passed explicitly so callers are free to rewrite f.Section first.
func (r *SectionRegistry) detach(f *Field, section string) bool {
	fields := r.sections[section]
	i := indexOf(fields, f)
	if i < 0 {
		return false
	}
	r.sections[section] = append(fields[:i], fields[i+1:]...)
	return true
}

func (r *SectionRegistry) emit(ev Event) {
	if r.sink != nil {
		r.sink.OnEvent(ev)
	}
}

func indexOf(fields []*Field, f *Field) int {
	for i, candidate := range fields {
		if candidate == f {
			return i
		}
	}
	return -1
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
