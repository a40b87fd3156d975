package morfo

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"shanhu.io/misc/errcode"
)

// buildAction is the structure for creating the digest of a build: the
// compiler command and the shape of the graph.
type buildAction struct {
	CC     string
	CFlags []string `json:",omitempty"`
	Units  []string
	Deps   [][]int
}

func makeBuildDigest(env *env, g *Graph) (string, error) {
	a := &buildAction{
		CC:     env.cc,
		CFlags: env.cflags,
	}
	for _, n := range g.nodes {
		a.Units = append(a.Units, relPath(g.root, n.file))
		a.Deps = append(a.Deps, n.deps)
	}

	buf := new(bytes.Buffer)
	fmt.Fprintln(buf, "build")
	fmt.Fprintln(buf, g.Main())
	bs, err := json.Marshal(a)
	if err != nil {
		return "", errcode.Annotate(err, "json marshal")
	}
	buf.Write(bs)
	sum := sha256.Sum256(buf.Bytes())
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}
