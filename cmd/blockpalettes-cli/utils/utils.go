package utils

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// JoinBlocks renders a palette's blocks on one line, empty slots are left out.
func JoinBlocks(blocks [6]string) string {
	var names []string
	for _, b := range blocks {
		if b != "" {
			names = append(names, b)
		}
	}
	return strings.Join(names, ", ")
}

func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
