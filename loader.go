package morfo

import (
	"fmt"
	"path/filepath"
	"strings"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/osutil"
	"shanhu.io/text/lexing"
)

type loader struct {
	env   *env
	index *dirIndex

	nodes []*buildNode

	// Loaded units, by canonical path. A unit is loaded once, even when
	// reached through several includes.
	loaded map[string]int

	// Non-root units by stem, for catching object file collisions.
	stems map[string]int

	tracer  *loadTracer
	errList *lexing.ErrorList
}

func newLoader(env *env, index *dirIndex) *loader {
	return &loader{
		env:     env,
		index:   index,
		loaded:  make(map[string]int),
		stems:   make(map[string]int),
		tracer:  newLoadTracer(),
		errList: lexing.NewErrorList(),
	}
}

func (l *loader) failed() bool { return l.errList.Errs() != nil }

func (l *loader) resolveHeader(dir, target string) string {
	var cands []string
	if filepath.IsAbs(target) {
		cands = append(cands, target)
	} else {
		cands = append(cands, filepath.Join(dir, target))
		for _, inc := range l.env.includes {
			cands = append(cands, filepath.Join(inc, target))
		}
		cands = append(cands, filepath.Join(l.env.rootDir, target))
	}
	for _, c := range cands {
		p, err := canonicalPath(c)
		if err == nil && l.index.isHeader(p) {
			return p
		}
	}

	if found := l.index.headersBySuffix(target); len(found) == 1 {
		return found[0]
	}
	return ""
}

func (l *loader) resolveSource(header string) string {
	for _, ext := range sourceExts {
		if p := swapExt(header, ext); l.index.isSource(p) {
			return p
		}
	}
	if found := l.index.sourcesByStem(Stem(header)); len(found) == 1 {
		return found[0]
	}
	return ""
}

// load adds the unit of the given source file and, recursively, all the
// units it depends on. It returns the index of the unit's node.
func (l *loader) load(file, name string, pos *lexing.Pos) int {
	i := len(l.nodes)
	n := &buildNode{name: name, file: file, pos: pos}
	l.nodes = append(l.nodes, n)
	l.loaded[file] = i

	l.tracer.push(file)
	defer l.tracer.pop()

	incs, err := scanIncludes(file)
	if err != nil {
		l.errList.Add(&lexing.Error{
			Pos: pos,
			Err: errcode.Annotatef(err, "read %q", name),
		})
		return i
	}

	dir := filepath.Dir(file)
	for _, inc := range incs {
		header := l.resolveHeader(dir, inc.target)
		if header == "" {
			l.env.logf("%s: %q is external", posString(inc.pos), inc.target)
			continue
		}
		src := l.resolveSource(header)
		if src == "" {
			l.env.logf("%s: %q is header only", posString(inc.pos), inc.target)
			continue
		}
		if src == file {
			continue
		}

		if j, ok := l.loaded[src]; ok {
			back := l.tracer.onStack(src)
			if back {
				l.env.logf(
					"%s: include cycle: %s", posString(inc.pos),
					strings.Join(l.relNames(l.tracer.cycle(src)), " -> "),
				)
			}
			n.addDep(j, back)
			continue
		}

		depName := relPath(l.env.rootDir, src)
		stem := Stem(src)
		if j, ok := l.stems[stem]; ok {
			l.errList.Errorf(
				inc.pos, "%q and %q both build %s.o",
				l.nodes[j].name, depName, stem,
			)
			return i
		}
		l.stems[stem] = len(l.nodes)

		j := l.load(src, depName, inc.pos)
		n.addDep(j, false)
		if l.failed() {
			return i
		}
	}
	return i
}

func posString(p *lexing.Pos) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

func (l *loader) relNames(files []string) []string {
	var names []string
	for _, f := range files {
		names = append(names, relPath(l.env.rootDir, f))
	}
	return names
}

func loadGraph(env *env, main string) (*Graph, []*lexing.Error) {
	isFile, err := osutil.IsRegular(main)
	if err != nil {
		return nil, lexing.SingleErr(errcode.Annotatef(err, "check %q", main))
	}
	if !isFile {
		return nil, lexing.SingleErr(errcode.NotFoundf("file not found: %s", main))
	}
	file, err := canonicalPath(main)
	if err != nil {
		return nil, lexing.SingleErr(errcode.Annotate(err, "resolve main file"))
	}

	index, err := newDirIndex(env.rootDir)
	if err != nil {
		return nil, lexing.SingleErr(errcode.Annotate(err, "index project"))
	}
	env.logf(
		"indexed %d headers and %d sources under %s",
		len(index.headers), len(index.sources), index.root,
	)

	l := newLoader(env, index)
	l.load(file, main, &lexing.Pos{File: main})
	if errs := l.errList.Errs(); errs != nil {
		return nil, errs
	}
	return &Graph{
		root:  index.root,
		nodes: l.nodes,
		index: index,
	}, nil
}
