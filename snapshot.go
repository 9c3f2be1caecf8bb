package newsmaker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// fieldRecord is the wire form of one field inside a snapshot. Tag and
// language names are plain strings, not enum identities, so the format
// stays stable when the tag set or language list changes later. Template
// is a pointer so that a missing key can be told apart from an empty
// template when decoding.
type fieldRecord struct {
	Section  string                       `json:"section"`
	Template *string                      `json:"template"`
	Constant map[string]string            `json:"language-constant-properties"`
	Variable map[string]map[string]string `json:"language-variable-properties"`
}

// EncodeSnapshot serializes the registry's full field set, keyed by
// section name, preserving the iteration order of sections and of fields
// within each section. Encoding is a pure function of current field
// state.
func EncodeSnapshot(reg *SectionRegistry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range reg.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(section)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		records := make([]fieldRecord, 0, len(reg.sections[section]))
		for _, f := range reg.sections[section] {
			records = append(records, recordOf(f))
		}
		data, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeSnapshot rebuilds a registry from a snapshot. Tags are
// constructed fresh from the names found in the document; no predeclared
// tag catalogue is assumed. Sections appear in document order, followed
// by any configured section the snapshot does not mention (the default
// section always exists). On any structural defect a CorruptSnapshotError
// is returned and no partial registry escapes, so the caller's current
// document stays intact.
func DecodeSnapshot(data []byte, format *Format) (*SectionRegistry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, NewCorruptSnapshotError(fmt.Sprintf("not a JSON document: %v", err))
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, NewCorruptSnapshotError("snapshot root must be an object keyed by section name")
	}

	reg := &SectionRegistry{format: format, sections: map[string][]*Field{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, NewCorruptSnapshotError(fmt.Sprintf("reading section name: %v", err))
		}
		section, ok := keyTok.(string)
		if !ok {
			return nil, NewCorruptSnapshotError("section name must be a string")
		}

		var records []fieldRecord
		if err := dec.Decode(&records); err != nil {
			return nil, &CorruptSnapshotError{
				Section: section,
				Message: fmt.Sprintf("field list: %v", err),
			}
		}
		reg.register(section)
		for _, rec := range records {
			f, err := fieldFromRecord(section, rec, format)
			if err != nil {
				return nil, err
			}
			reg.sections[section] = append(reg.sections[section], f)
		}
	}

	// Consume the closing brace and require EOF behind it; trailing
	// content means the document is not the snapshot it claims to be.
	if _, err := dec.Token(); err != nil {
		return nil, NewCorruptSnapshotError(fmt.Sprintf("unterminated snapshot object: %v", err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, NewCorruptSnapshotError("trailing content after the snapshot object")
	}

	reg.register(DefaultSection)
	if format != nil {
		for _, p := range format.Presets {
			if p.SectionTag != "" {
				reg.register(p.SectionTag)
			}
		}
	}
	return reg, nil
}

func recordOf(f *Field) fieldRecord {
	template := f.Template
	rec := fieldRecord{
		Section:  f.Section,
		Template: &template,
		Constant: make(map[string]string, len(f.invariant)),
		Variable: make(map[string]map[string]string, len(f.variant)),
	}
	for tag, value := range f.invariant {
		rec.Constant[tag.Name] = value
	}
	for language, perLanguage := range f.variant {
		values := make(map[string]string, len(perLanguage))
		for tag, value := range perLanguage {
			values[tag.Name] = value
		}
		rec.Variable[language] = values
	}
	return rec
}

func fieldFromRecord(section string, rec fieldRecord, format *Format) (*Field, error) {
	if rec.Template == nil {
		return nil, NewMissingKeyError(section, "template")
	}
	if rec.Constant == nil {
		return nil, NewMissingKeyError(section, "language-constant-properties")
	}
	if rec.Variable == nil {
		return nil, NewMissingKeyError(section, "language-variable-properties")
	}

	f := &Field{
		Section:   section,
		Template:  *rec.Template,
		invariant: make(map[Tag]string, len(rec.Constant)),
		variant:   make(map[string]map[Tag]string, len(rec.Variable)),
		format:    format,
	}
	for name, value := range rec.Constant {
		f.invariant[NewTag(name)] = value
	}
	for language, values := range rec.Variable {
		perLanguage := make(map[Tag]string, len(values))
		for name, value := range values {
			perLanguage[NewVariantTag(name)] = value
		}
		f.variant[language] = perLanguage
	}
	return f, nil
}
