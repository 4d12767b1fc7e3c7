package logging

// Structured log keys.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldSyntax  = "syntax"
	FieldFlavor  = "flavor"
	FieldJobs    = "jobs"
	FieldBackend = "backend"
	FieldConfig  = "config"

	// Parse fields.
	FieldElements = "elements"
	FieldOffset   = "offset"
	FieldKind     = "kind"
	FieldDuration = "duration"
	FieldEdits    = "edits"

	// Cache fields.
	FieldChecksum = "checksum"
	FieldCacheHit = "cache_hit"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"

	// Language server fields.
	FieldURI     = "uri"
	FieldMethod  = "method"
	FieldVersion = "version"
)
