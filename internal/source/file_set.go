package source

import (
	"crypto/sha256"
	"fmt"

	"fortio.org/safecast"
)

// FileSet manages a collection of label documents and resolves byte offsets
// into line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a document from UTF-8 bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a document with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("len content overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// The index always points at the latest version of a path.
	fileSet.index[normalizedPath] = id
	return id
}

// AddVirtual adds an in-memory UTF-8 document with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// AddEncoded adds raw label bytes as read from a data product. A leading
// UTF-8 BOM is dropped and non-UTF-8 input is decoded as ISO 8859-1.
func (fileSet *FileSet) AddEncoded(name string, raw []byte) FileID {
	content, hadBOM := removeBOM(raw)
	content, latin1 := decodeLatin1(content)

	flags := FileVirtual
	if hadBOM {
		flags |= FileHadBOM
	}
	if latin1 {
		flags |= FileDecodedLatin1
	}
	return fileSet.Add(name, content, flags)
}

// Get returns the document for the given ID, or nil when the ID is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetLatest returns the latest document ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of documents in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}

// Position converts a byte offset into a 1-based line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Text returns the document content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Slice returns the text covered by sp.
func (f *File) Slice(sp Span) string {
	return string(f.Content[sp.Start:sp.End])
}

// GetLine returns line lineNum (1-based) without its trailing '\n', or
// an empty string when the line does not exist. LineIdx holds the offset
// of every '\n', so line k spans (LineIdx[k-2], LineIdx[k-1]).
func (f *File) GetLine(lineNum uint32) string {
	k := int(lineNum)
	if k == 0 || k > len(f.LineIdx)+1 {
		return ""
	}
	start, end := 0, len(f.Content)
	if k > 1 {
		start = int(f.LineIdx[k-2]) + 1
	}
	if k <= len(f.LineIdx) {
		end = int(f.LineIdx[k-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
