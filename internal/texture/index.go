package texture

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a texture stem is missing from the index.
var ErrNotFound = errors.New("texture: not found")

// Extensions lists the decodable extensions in lookup priority order.
var Extensions = []string{".png", ".jpg", ".jpeg", ".tga", ".bmp", ".webp"}

// Index maps lowercase texture stems to filesystem paths.
// When a stem exists with several extensions, the earlier entry in
// Extensions wins.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans assetDir recursively for decodable images.
// A missing directory yields an empty index.
func BuildIndex(assetDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(assetDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank := extRank(ext)
		if rank < 0 {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank < extRank(strings.ToLower(filepath.Ext(existing))) {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// Names may carry a directory or extension; only the stem is matched.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func extRank(ext string) int {
	for i, e := range Extensions {
		if e == ext {
			return i
		}
	}
	return -1
}
