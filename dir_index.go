package morfo

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/strutil"
)

var (
	headerExts = []string{".h", ".hh", ".hpp", ".hxx"}
	sourceExts = []string{".c", ".cc", ".cpp", ".cxx"}
)

func hasExt(p string, exts []string) bool {
	ext := filepath.Ext(p)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// dirIndex is the classification of all the C/C++ files under a project
// root. Paths are canonical.
type dirIndex struct {
	root    string
	headers []string
	sources []string

	headerSet map[string]bool
	sourceSet map[string]bool
	stems     map[string][]string // source files by stem
}

func newDirIndex(root string) (*dirIndex, error) {
	root, err := canonicalPath(root)
	if err != nil {
		return nil, errcode.Annotate(err, "resolve root")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errcode.InvalidArgf("%q is not a directory", root)
	}

	idx := &dirIndex{
		root:      root,
		headerSet: make(map[string]bool),
		sourceSet: make(map[string]bool),
		stems:     make(map[string][]string),
	}

	walk := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(p)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
			real, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil
			}
			p = real
		} else if !d.Type().IsRegular() {
			return nil
		}
		idx.add(p)
		return nil
	}

	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, errcode.Annotatef(err, "walk %q", root)
	}
	return idx, nil
}

func (idx *dirIndex) add(p string) {
	switch {
	case hasExt(p, headerExts):
		if !idx.headerSet[p] {
			idx.headerSet[p] = true
			idx.headers = append(idx.headers, p)
		}
	case hasExt(p, sourceExts):
		if !idx.sourceSet[p] {
			idx.sourceSet[p] = true
			idx.sources = append(idx.sources, p)
			stem := Stem(p)
			idx.stems[stem] = append(idx.stems[stem], p)
		}
	}
}

func (idx *dirIndex) isHeader(p string) bool { return idx.headerSet[p] }
func (idx *dirIndex) isSource(p string) bool { return idx.sourceSet[p] }

// sourcesByStem returns the source files that have the given stem.
func (idx *dirIndex) sourcesByStem(stem string) []string {
	return idx.stems[stem]
}

// headersBySuffix returns the headers whose path ends with "/name".
func (idx *dirIndex) headersBySuffix(name string) []string {
	suffix := string(filepath.Separator) + filepath.FromSlash(name)
	var found []string
	for _, h := range idx.headers {
		if strings.HasSuffix(h, suffix) {
			found = append(found, h)
		}
	}
	return found
}

// list returns the header and source file paths relative to the root,
// sorted.
func (idx *dirIndex) list() (headers, sources []string) {
	rel := func(ps []string) []string {
		var names []string
		for _, p := range ps {
			names = append(names, relPath(idx.root, p))
		}
		return strutil.SortedList(strutil.MakeSet(names))
	}
	return rel(idx.headers), rel(idx.sources)
}
