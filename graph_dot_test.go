package morfo

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shanhu.io/misc/jsonutil"
)

func TestWriteDOT(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c": "#include \"b.h\"\n",
		"main.h": "",
		"b.h":    "",
		"b.c":    "#include \"main.h\"\n",
	})
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)

	buf := new(bytes.Buffer)
	require.NoError(t, g.WriteDOT(buf))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph morfo {\n"))
	assert.Contains(t, dot, fmt.Sprintf("%q -> %q;\n", main, "b.c"))
	assert.Contains(t, dot, fmt.Sprintf("%q -> %q [style=dashed];\n", "b.c", main))
}

func TestSaveJSON(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, diamondProject)
	main := filepath.Join(root, "main.c")

	b := newTestBuilder(t, root, &Config{CC: "cc"})
	g := loadTestGraph(t, b, main)

	f := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, g.SaveJSON(f))

	got := new(GraphFiles)
	require.NoError(t, jsonutil.ReadFile(f, got))
	assert.Equal(t, main, got.Main)
	require.Len(t, got.Units, 4)
	assert.Equal(t, []string{"b.c", "c.c"}, got.Units[0].Deps)
	assert.Equal(t, []string{"b.h", "c.h", "d.h"}, got.Headers)
	assert.Equal(t, []string{"b.c", "c.c", "d.c", "main.c"}, got.Sources)
}
