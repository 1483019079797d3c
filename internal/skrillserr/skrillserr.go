// Package skrillserr provides typed errors for skrills.
package skrillserr

import "fmt"

// Code identifies the kind of error, independent of its message.
type Code string

const (
	// Input errors.
	CodeInvalidArgument         Code = "INVALID_ARGUMENT"
	CodeInvalidDependencyFormat Code = "INVALID_DEPENDENCY_FORMAT"
	CodeFrontmatterParse        Code = "FRONTMATTER_PARSE"

	// Discovery errors.
	CodeDiscoveryIO       Code = "DISCOVERY_IO"
	CodePermissionDenied  Code = "PERMISSION_DENIED"
	CodePathEscape        Code = "PATH_ESCAPE"

	// Cache errors.
	CodeSnapshotCorrupt Code = "SNAPSHOT_CORRUPT"

	// Resolver errors.
	CodeNotFound           Code = "NOT_FOUND"
	CodeCircularDependency Code = "CIRCULAR_DEPENDENCY"
	CodeVersionMismatch    Code = "VERSION_MISMATCH"
	CodeMaxDepthExceeded   Code = "MAX_DEPTH_EXCEEDED"

	// Sync errors.
	CodeAdapterRead      Code = "ADAPTER_READ"
	CodeAdapterWrite     Code = "ADAPTER_WRITE"
	CodeUnsupportedField Code = "UNSUPPORTED_FIELD"
	CodeConflictSkip     Code = "CONFLICT_SKIP"

	// System errors.
	CodeIO   Code = "IO"
	CodeUTF8 Code = "UTF8"
)

// Error is a typed error carrying a stable code and an optional hint and cause.
type Error struct {
	Code    Code
	Message string
	Hint    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no cause.
func New(code Code, message, hint string) *Error {
	return &Error{Code: code, Message: message, Hint: hint}
}

// Wrap creates an Error wrapping an existing error.
func Wrap(code Code, message, hint string, cause error) *Error {
	return &Error{Code: code, Message: message, Hint: hint, Cause: cause}
}

// InvalidArgument reports a malformed or missing argument.
func InvalidArgument(detail string) *Error {
	return New(CodeInvalidArgument, "invalid argument: "+detail, "")
}

// InvalidDependencyFormat reports a `depends` entry that doesn't match the dependency grammar.
func InvalidDependencyFormat(raw string) *Error {
	return New(CodeInvalidDependencyFormat,
		fmt.Sprintf("invalid dependency format: %q", raw),
		"expected [source:]name[@version-req]")
}

// FrontmatterParse reports a YAML/fence/encoding error while parsing frontmatter.
func FrontmatterParse(kind, detail string) *Error {
	return New(CodeFrontmatterParse, fmt.Sprintf("frontmatter parse error (%s): %s", kind, detail), "")
}

// DiscoveryIO reports an I/O failure while traversing a root.
func DiscoveryIO(path string, cause error) *Error {
	return Wrap(CodeDiscoveryIO, fmt.Sprintf("failed to scan %s", path), "", cause)
}

// PathEscape reports a symlink or relative path that would leave its root.
func PathEscape(path string) *Error {
	return New(CodePathEscape, fmt.Sprintf("path escapes root: %s", path), "")
}

// SnapshotCorrupt reports a persisted snapshot seed that failed to decode; treated as a cold start.
func SnapshotCorrupt(cause error) *Error {
	return Wrap(CodeSnapshotCorrupt, "snapshot cache seed is corrupt", "falling back to a full rescan", cause)
}

// NotFound reports a missing skill during dependency resolution.
func NotFound(name, requiredBy string) *Error {
	return New(CodeNotFound, fmt.Sprintf("dependency %q required by %q not found", name, requiredBy), "")
}

// CircularDependency reports a dependency cycle, carrying the chain that closed it.
func CircularDependency(chain []string) *Error {
	return New(CodeCircularDependency, fmt.Sprintf("circular dependency: %v", chain), "")
}

// VersionMismatch reports a semver constraint that the resolved skill's version fails.
func VersionMismatch(name, constraint, version string) *Error {
	return New(CodeVersionMismatch,
		fmt.Sprintf("%s@%s does not satisfy constraint %q", name, version, constraint), "")
}

// MaxDepthExceeded reports a dependency chain deeper than ResolveOptions.MaxDepth.
func MaxDepthExceeded(name string, depth int) *Error {
	return New(CodeMaxDepthExceeded, fmt.Sprintf("max depth exceeded resolving %q at depth %d", name, depth), "")
}

// AdapterRead reports a failure reading a field from an adapter.
func AdapterRead(adapter, field string, cause error) *Error {
	return Wrap(CodeAdapterRead, fmt.Sprintf("%s: failed to read %s", adapter, field), "", cause)
}

// AdapterWrite reports a failure writing a field to an adapter.
func AdapterWrite(adapter, field string, cause error) *Error {
	return Wrap(CodeAdapterWrite, fmt.Sprintf("%s: failed to write %s", adapter, field), "", cause)
}

// UnsupportedField reports a field an adapter does not implement.
func UnsupportedField(adapter, field string) *Error {
	return New(CodeUnsupportedField, fmt.Sprintf("%s does not support %s", adapter, field), "")
}
