package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies a single CLI invocation.
	FieldRunID = "run_id"
	// FieldASIN is the cross-registry key of the title a line refers to.
	FieldASIN = "asin"
	// FieldTitle is the display title of the title a line refers to.
	FieldTitle = "title"
	// FieldPath is the filesystem path a line refers to.
	FieldPath = "path"
	// FieldEventType is a stable machine-readable name for the event.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)
