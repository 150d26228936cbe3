package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

var builtinSeeds = []string{
	"",
	"END",
	"A = 1\nB = -2.5e+3 <m/s>\nEND\n",
	"GROUP = G\n  V = {1, 2#1010#, 16#+FF#}\nEND_GROUP\nEND\n",
	"OBJECT = IMAGE /* c */\n  MASK = 5#-1234#\nEND_OBJECT = IMAGE\nEND\n",
	"# isis\nObject = IsisCube\n  Name = \"a \\\"b\\\" c\"\nEnd_Object\nEnd\n",
	"T = 2016-12-31T23:59:60Z\nD = 2020-123\n",
	"A = \"open",
	"/* never closed",
	"A = \x01",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lbl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
