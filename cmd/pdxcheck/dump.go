package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/pdxkit/go-pdxscript/ir"
	"github.com/pdxkit/go-pdxscript/parse"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: dump requires at least one file", cli.ErrUsage)
	}
	for _, file := range args {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		root := parse.Parse(string(data), file)
		dumpNode(cc, root, 0)
	}
	return nil
}

func dumpNode(cc *cli.Context, node *ir.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch node.Kind {
	case ir.Property:
		switch {
		case node.Key == "":
			fmt.Fprintf(cc.Out, "%s%s\n", indent, node.Value)
		default:
			fmt.Fprintf(cc.Out, "%s%s %s %s\n", indent, node.Key, node.Operator, node.Value)
		}
	case ir.Block:
		fmt.Fprintf(cc.Out, "%s%s {  # %d entries, %s\n", indent, node.Key, len(node.Children), node.Range)
		for _, child := range node.Children {
			dumpNode(cc, child, depth+1)
		}
		fmt.Fprintf(cc.Out, "%s}\n", indent)
	}
}
