package newsmaker

import "fmt"

// WrongVarianceError reports that the language-invariant accessor was used
// on a language-variant tag or vice versa. It always indicates a
// programming or configuration mistake and is never recoverable.
type WrongVarianceError struct {
	Tag Tag    // the tag that was accessed
	Op  string // the accessor that was used
}

// Error implements the error interface.
func (e *WrongVarianceError) Error() string {
	if e.Tag.LanguageVariant {
		return fmt.Sprintf("%s: tag %s holds one value per language; a language is required", e.Op, e.Tag.Name)
	}
	return fmt.Sprintf("%s: tag %s holds a single shared value; it cannot be set per language", e.Op, e.Tag.Name)
}

// ValidationError reports that a preset's parameter values cannot be
// mapped onto the configured languages. The preset is not applied and the
// field is left unchanged.
type ValidationError struct {
	Preset string // name of the offending preset
	Tag    Tag    // parameter whose value count is wrong
	Want   int    // expected number of values
	Got    int    // number of values the preset carries
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("preset %q: tag %s has %d value(s), want %d",
		e.Preset, e.Tag.Name, e.Got, e.Want)
}

// UnknownSectionError reports an assignment to a section name that was
// never registered. Sections come from the configuration (the default
// section plus every preset section tag); they are not created from
// arbitrary user text.
type UnknownSectionError struct {
	Section string
}

// Error implements the error interface.
func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Section)
}

// CorruptSnapshotError reports that a working-document snapshot is missing
// required structure. The caller should keep its current in-memory
// document rather than partially overwrite it.
type CorruptSnapshotError struct {
	Section string // section being decoded, if known
	Key     string // missing structural key, if the problem is a missing key
	Message string
}

// Error implements the error interface.
func (e *CorruptSnapshotError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("missing required key %q", e.Key)
	}
	if e.Section != "" {
		return fmt.Sprintf("corrupt snapshot: section %q: %s", e.Section, msg)
	}
	return fmt.Sprintf("corrupt snapshot: %s", msg)
}

// NewWrongVarianceError creates a new WrongVarianceError.
func NewWrongVarianceError(op string, tag Tag) *WrongVarianceError {
	return &WrongVarianceError{Tag: tag, Op: op}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(preset string, tag Tag, want, got int) *ValidationError {
	return &ValidationError{Preset: preset, Tag: tag, Want: want, Got: got}
}

// NewUnknownSectionError creates a new UnknownSectionError.
func NewUnknownSectionError(section string) *UnknownSectionError {
	return &UnknownSectionError{Section: section}
}

// NewCorruptSnapshotError creates a CorruptSnapshotError with a free-form
// message.
func NewCorruptSnapshotError(message string) *CorruptSnapshotError {
	return &CorruptSnapshotError{Message: message}
}

// NewMissingKeyError creates a CorruptSnapshotError for a missing
// structural key inside a section.
func NewMissingKeyError(section, key string) *CorruptSnapshotError {
	return &CorruptSnapshotError{Section: section, Key: key}
}
