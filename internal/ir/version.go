package ir

// Version constants for the document format and tool.
const (
	// DocumentVersion identifies the shape of serialized query documents.
	// Bump it when leaf or group rendering changes.
	DocumentVersion = "1"

	// ToolVersion is the qbool release version.
	ToolVersion = "0.1.0"
)
