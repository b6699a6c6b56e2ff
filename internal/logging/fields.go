package logging

// Field names for structured logging.
const (
	FieldError     = "error"
	FieldPath      = "path"
	FieldOutput    = "output"
	FieldComponent = "component"
	FieldDocument  = "doc"

	FieldSize     = "size"
	FieldPieces   = "pieces"
	FieldLogLen   = "log_len"
	FieldOps      = "ops"
	FieldRevision = "revision"
	FieldEvent    = "event"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
