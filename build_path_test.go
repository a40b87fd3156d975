package morfo

import (
	"testing"
)

func TestStem(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"main.c", "main"},
		{"src/main.cpp", "main"},
		{"main", "main"},
		{"a/b/main", "main"},
		{"/abs/dir/util.tab.c", "util"},
	} {
		if got := Stem(test.in); got != test.want {
			t.Errorf("Stem(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestSwapExt(t *testing.T) {
	if got := swapExt("dir/aux.h", ".c"); got != "dir/aux.c" {
		t.Errorf("got %q, want dir/aux.c", got)
	}
	if got := swapExt("aux", ".c"); got != "aux.c" {
		t.Errorf("got %q, want aux.c", got)
	}
}

func TestRelPath(t *testing.T) {
	if got := relPath("/root/proj", "/root/proj/sub/a.c"); got != "sub/a.c" {
		t.Errorf("got %q, want sub/a.c", got)
	}
	if got := relPath("/root/proj", "/elsewhere/a.c"); got != "/elsewhere/a.c" {
		t.Errorf("got %q, want /elsewhere/a.c", got)
	}
}
