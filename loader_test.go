package morfo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shanhu.io/misc/errcode"
)

func TestLoad_resolvesDependency(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c": "#include <stdio.h>\n#include \"aux.h\"\nint main() {}\n",
		"aux.h":  "void aux(void);\n",
		"aux.c":  "void aux(void) {}\n",
	})
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)
	assert.Equal(t, []string{main, "aux.c"}, g.Units())
	assert.Equal(t, []string{"aux.c"}, g.Deps(main))
	assert.Empty(t, g.Deps("aux.c"))
}

func TestLoad_subdirHeader(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c":        "#include \"aux.h\"\n#include \"lib/util.h\"\n",
		"subdir/aux.h":  "",
		"subdir/aux.c":  "",
		"lib/util.h":    "",
		"lib/util.c":    "#include \"util.h\"\n",
		"other/util2.h": "",
	})
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)
	assert.Equal(t, []string{"subdir/aux.c", "lib/util.c"}, g.Deps(main))
	assert.Empty(t, g.Deps("lib/util.c"))
}

func TestLoad_unresolvableInclude(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c":   "#include \"missing.h\"\n#include \"only.h\"\n",
		"only.hpp": "",
		"only.h":   "",
	})
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)
	assert.Equal(t, []string{main}, g.Units())
	assert.Empty(t, g.Deps(main))
}

func TestLoad_includeCycle(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c": "#include \"main.h\"\n#include \"b.h\"\n",
		"main.h": "",
		"b.h":    "",
		"b.c":    "#include \"c.h\"\n#include \"main.h\"\n",
		"c.h":    "",
		"c.c":    "#include \"b.h\"\n",
	})
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)
	assert.Equal(t, []string{main, "b.c", "c.c"}, g.Units())
	assert.Equal(t, []string{"c.c", main}, g.Deps("b.c"))
	assert.Equal(t, []string{"b.c"}, g.Deps("c.c"))

	// Back edges do not order the build.
	assert.Equal(t, []int{2, 1, 0}, g.postOrder())
	assert.Equal(t, [][]int{{2}, {1}}, g.levels())
}

func TestLoad_diamond(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, diamondProject)
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)
	assert.Equal(t, []string{main, "b.c", "d.c", "c.c"}, g.Units())
	assert.Equal(t, []string{"b.c", "c.c"}, g.Deps(main))
	assert.Equal(t, []string{"d.c"}, g.Deps("b.c"))
	assert.Equal(t, []string{"d.c"}, g.Deps("c.c"))

	assert.Equal(t, []int{2, 1, 3, 0}, g.postOrder())
	assert.Equal(t, [][]int{{2}, {1, 3}}, g.levels())
}

func TestLoad_includeDirs(t *testing.T) {
	files := map[string]string{
		"src/main.c":    "#include \"lib.h\"\n",
		"include/lib.h": "",
		"include/lib.c": "",
		"other/lib.h":   "",
	}

	root := t.TempDir()
	writeFiles(t, root, files)
	main := filepath.Join(root, "src", "main.c")

	// Two headers match by name; without search directories the include
	// is ambiguous and treated as external.
	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)
	assert.Empty(t, g.Deps(main))

	b = newTestBuilder(t, root, &Config{
		CC:       "cc",
		Includes: []string{"include"},
	})
	g = loadTestGraph(t, b, main)
	assert.Equal(t, []string{"include/lib.c"}, g.Deps(main))
}

func TestLoad_sourceByStem(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c":          "#include \"include/queue.h\"\n",
		"include/queue.h": "",
		"src/queue.c":     "",
	})
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)
	assert.Equal(t, []string{"src/queue.c"}, g.Deps(main))
}

func TestLoad_stemCollision(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c": "#include \"a/x.h\"\n#include \"b/x.h\"\n",
		"a/x.h":  "",
		"a/x.c":  "",
		"b/x.h":  "",
		"b/x.c":  "",
	})
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g, errs := b.Load(main)
	assert.Nil(t, g)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Err.Error(), "x.o")
	assert.Equal(t, 2, errs[0].Pos.Line)
}

func TestLoad_missingMain(t *testing.T) {
	root := t.TempDir()
	b := newTestBuilder(t, root, &Config{CC: "cc"})
	_, errs := b.Load(filepath.Join(root, "main.c"))
	require.Len(t, errs, 1)
	assert.True(t, errcode.IsNotFound(errs[0].Err))
}
