package source

type (
	// FileID uniquely identifies a source document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source document.
	FileFlags uint8
)

const (
	// FileVirtual indicates the document was added from memory (test, label buffer, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	// FileDecodedLatin1 marks a document whose raw bytes were not UTF-8 and
	// were decoded as ISO 8859-1.
	FileDecodedLatin1
)

// File captures metadata and content for a single label document.
// Content is always valid UTF-8; LineIdx holds byte offsets of every '\n'.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
