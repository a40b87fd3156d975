package morfo

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

var localIncludeRE = regexp.MustCompile(`^\s*#\s*include\s*"([^"]+)"`)

// include is a local include directive found in a source file.
type include struct {
	target string
	pos    *lexing.Pos
}

// scanIncludes returns the targets of all `#include "..."` directives in
// file, in line order. Angle bracket includes are not returned. Lines
// have no length limit.
func scanIncludes(file string) ([]*include, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var incs []*include
	r := bufio.NewReader(f)
	line := 0
	for {
		text, err := r.ReadString('\n')
		if text != "" {
			line++
			text = strings.TrimRight(text, "\r\n")
			if m := localIncludeRE.FindStringSubmatchIndex(text); m != nil {
				incs = append(incs, &include{
					target: text[m[2]:m[3]],
					pos: &lexing.Pos{
						File: file,
						Line: line,
						Col:  utf8.RuneCountInString(text[:m[2]]) + 1,
					},
				})
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errcode.Annotatef(err, "scan %q", file)
		}
	}
	return incs, nil
}
