package morfo

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name of p with its directory prefix and extension
// removed. Everything after the first dot of the file name counts as
// extension.
func Stem(p string) string {
	base := p
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}

// canonicalPath returns the absolute, cleaned form of p with symlinks
// resolved. When symlinks cannot be resolved (the file might not exist
// yet), the cleaned absolute path is returned.
func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

// swapExt replaces the extension of p with ext.
func swapExt(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}

// relPath returns p relative to root when p is under root, and p
// unchanged otherwise.
func relPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return filepath.ToSlash(rel)
}
