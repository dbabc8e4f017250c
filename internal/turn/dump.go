package turn

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the sequence rooted at root as an indented tree. Decision
// nodes print their primary branch first, then the alternate one when it
// differs.
func Dump(w io.Writer, root *Node) {
	dump(w, root, 0)
}

// DumpString returns the output of Dump.
func DumpString(root *Node) string {
	var b strings.Builder
	Dump(&b, root)
	return b.String()
}

func dump(w io.Writer, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("\t", depth)
	if n.dec == nil {
		fmt.Fprintf(w, "%s- %d. %s\n", indent, depth+1, n.label)
		dump(w, n.next, depth+1)
		return
	}
	fmt.Fprintf(w, "%s? %d. %s Timeout: %t %s\n", indent, depth+1, n.dec.flag, n.dec.timed, n.label)
	dump(w, n.next, depth+1)
	if n.dec.alt != n.next {
		dump(w, n.dec.alt, depth+1)
	}
}
