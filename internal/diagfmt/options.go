package diagfmt

import (
	"path"
	"path/filepath"

	"pvl/internal/source"
)

// PathMode specifies how document paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints the path as it was added to the FileSet.
	PathModeAuto PathMode = iota
	// PathModeRelative prints the path relative to BaseDir when possible.
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   uint8 // source lines shown above the primary line
	PathMode  PathMode
	BaseDir   string
	Width     int // maximum display width of a source line, 0 means unlimited
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	BaseDir          string
	Max              int // truncates the output, not the Bag
	IncludeNotes     bool
}

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeBasename:
		return path.Base(f.Path)
	case PathModeRelative:
		if baseDir == "" || !path.IsAbs(f.Path) {
			return f.Path
		}
		rel, err := filepath.Rel(filepath.FromSlash(baseDir), filepath.FromSlash(f.Path))
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(rel)
	}
	return f.Path
}
