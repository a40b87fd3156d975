package morfo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFiles writes files under root. Keys are slash separated paths.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func newTestBuilder(t *testing.T, root string, c *Config) *Builder {
	t.Helper()
	b, err := NewBuilder(root, c)
	require.NoError(t, err)
	b.SetStdio(strings.NewReader(""), os.Stderr)
	return b
}

func loadTestGraph(t *testing.T, b *Builder, main string) *Graph {
	t.Helper()
	g, errs := b.Load(main)
	require.Nil(t, errs)
	return g
}

func needCC(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("no C compiler")
	}
}

// fakeCompiler writes a shell script that acts like a compiler: it logs its
// arguments, one invocation per line, and writes to the -o file a shell
// script that prints "ran <name> <args>". It exits with 3 when any of its
// arguments ends with failOn.
func fakeCompiler(t *testing.T, failOn string) (cc, logFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler needs /bin/sh")
	}

	dir := t.TempDir()
	cc = filepath.Join(dir, "fakecc")
	logFile = filepath.Join(dir, "cc.log")

	var fail string
	if failOn != "" {
		fail = fmt.Sprintf(
			"for a in \"$@\"; do case \"$a\" in *%s) exit 3;; esac; done\n",
			failOn,
		)
	}
	script := "#!/bin/sh\n" +
		fmt.Sprintf("echo \"$*\" >> '%s'\n", logFile) +
		fail +
		"out=''\nprev=''\n" +
		"for a in \"$@\"; do\n" +
		"  if [ \"$prev\" = '-o' ]; then out=\"$a\"; fi\n" +
		"  prev=\"$a\"\n" +
		"done\n" +
		"printf '#!/bin/sh\\necho \"ran $(basename \"$0\") $*\"\\n' > \"$out\"\n" +
		"chmod +x \"$out\"\n"
	require.NoError(t, os.WriteFile(cc, []byte(script), 0755))
	return cc, logFile
}

func readLog(t *testing.T, f string) []string {
	t.Helper()
	bs, err := os.ReadFile(f)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(bs)), "\n")
}

// diamondProject is main.c including b.h and c.h, which both include d.h.
var diamondProject = map[string]string{
	"main.c": "#include \"b.h\"\n#include \"c.h\"\nint main(void) { return 0; }\n",
	"b.h":    "void b(void);\n",
	"b.c":    "#include \"b.h\"\n#include \"d.h\"\nvoid b(void) { d(); }\n",
	"c.h":    "void c(void);\n",
	"c.c":    "#include \"c.h\"\n#include \"d.h\"\nvoid c(void) { d(); }\n",
	"d.h":    "void d(void);\n",
	"d.c":    "#include \"d.h\"\nvoid d(void) {}\n",
}

// scriptCompiler writes a shell script with the given body and returns its
// path, for use as the compiler.
func scriptCompiler(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("script compiler needs /bin/sh")
	}
	cc := filepath.Join(t.TempDir(), "scriptcc")
	require.NoError(t, os.WriteFile(cc, []byte("#!/bin/sh\n"+body), 0755))
	return cc
}
