package newsmaker

// Event is a change notification emitted at the engine boundary. The
// engine itself has no reactivity; a UI collaborator that needs to stay in
// sync attaches an EventSink and reacts to these.
type Event interface{ isEvent() }

// ValueChangedEvent is emitted when a tag value on a field changes.
// Language is empty for language-invariant tags.
type ValueChangedEvent struct {
	Field    *Field
	Tag      Tag
	Language string
	Value    string
}

func (ValueChangedEvent) isEvent() {}

// PresetAppliedEvent is emitted after a preset has been applied to a field.
type PresetAppliedEvent struct {
	Field  *Field
	Preset string
}

func (PresetAppliedEvent) isEvent() {}

// FieldAssignedEvent is emitted when a field is placed into a section.
type FieldAssignedEvent struct {
	Field   *Field
	Section string
}

func (FieldAssignedEvent) isEvent() {}

// FieldReassignedEvent is emitted when a field moves between sections.
type FieldReassignedEvent struct {
	Field *Field
	From  string
	To    string
}

func (FieldReassignedEvent) isEvent() {}

// FieldMovedEvent is emitted when a field is reordered within its section.
type FieldMovedEvent struct {
	Field   *Field
	Section string
	From    int
	To      int
}

func (FieldMovedEvent) isEvent() {}

// FieldRemovedEvent is emitted when a field is removed from the registry.
type FieldRemovedEvent struct {
	Field   *Field
	Section string
}

func (FieldRemovedEvent) isEvent() {}

// EventSink receives engine events.
type EventSink interface {
	OnEvent(ev Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(ev Event)

func (f EventSinkFunc) OnEvent(ev Event) { f(ev) }
