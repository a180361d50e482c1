// Package diagram exports a flattened dymex Program as a Mermaid
// flowchart, useful for visualizing a compiled expression inside an
// interactive tool.
package diagram

import (
	"fmt"
	"sort"
	"strings"

	"dymex/flatten"
)

// Mermaid renders prog as a "graph TD" flowchart: one node per id, one
// edge per parent/child relationship in the ops table.
func Mermaid(prog *flatten.Program) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	seen := make(map[uint16]bool)
	var ids []uint16
	add := func(id uint16) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range prog.Ops {
		add(id)
	}
	for id := range prog.Values {
		add(id)
	}
	aliasName := make(map[uint16]string, len(prog.Aliases))
	for name, id := range prog.Aliases {
		aliasName[id] = name
		add(id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if name, ok := aliasName[id]; ok {
			b.WriteString(fmt.Sprintf("  n%d[[%s]]\n", id, name))
			continue
		}
		if op, ok := prog.Ops[id]; ok {
			b.WriteString(fmt.Sprintf("  n%d[%q]\n", id, op.Token.Token.Kind.String()))
			for _, child := range op.Children {
				b.WriteString(fmt.Sprintf("  n%d --> n%d\n", id, child))
			}
			continue
		}
		if v, ok := prog.Values[id]; ok {
			b.WriteString(fmt.Sprintf("  n%d([%v])\n", id, v))
		}
	}

	return b.String()
}
