package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scott-cotton/cli"
)

func listSchemas(cfg *SchemasConfig, cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: schemas takes no arguments", cli.ErrUsage)
	}
	v, err := cfg.validator()
	if err != nil {
		return err
	}
	schemas := v.Schemas.Schemas()
	if len(schemas) == 0 {
		fmt.Fprintln(cc.Out, "no schemas loaded")
		return nil
	}
	for _, s := range schemas {
		fmt.Fprintf(cc.Out, "%s\n", s.FileType)
		if len(s.Identification.PathPatterns) > 0 {
			fmt.Fprintf(cc.Out, "  paths: %s\n", strings.Join(s.Identification.PathPatterns, ", "))
		}
		if s.Identification.BlockPattern != "" {
			fmt.Fprintf(cc.Out, "  blocks: %s\n", s.Identification.BlockPattern)
		}
		var fields []string
		for name := range s.Fields {
			fields = append(fields, name)
		}
		sort.Strings(fields)
		fmt.Fprintf(cc.Out, "  fields: %s\n", strings.Join(fields, ", "))
	}
	types := v.Scopes.Types()
	if len(types) > 0 {
		fmt.Fprintf(cc.Out, "scope types: %s\n", strings.Join(types, ", "))
	}
	return nil
}
