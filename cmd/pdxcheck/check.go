package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/pdxkit/go-pdxscript/diag"
	"github.com/pdxkit/go-pdxscript/parse"
	"github.com/pdxkit/go-pdxscript/token"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	v, err := cfg.validator()
	if err != nil {
		return err
	}
	min := diag.ParseSeverity(cfg.Min, diag.Hint)
	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := scriptFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no script files under %s", cli.ErrUsage, strings.Join(args, ", "))
	}

	p := newPrinter(cfg.MainConfig, cc)
	var nErr, nWarn int
	for _, file := range files {
		data, err := os.ReadFile(file.path)
		if err != nil {
			return err
		}
		var braces parse.BraceReport
		root := parse.Parse(string(data), file.logical, parse.ParseBraceReport(&braces))

		ds := braceDiagnostics(braces)
		ds = append(ds, v.Validate(file.logical, root)...)
		for _, d := range ds {
			switch d.Severity {
			case diag.Error:
				nErr++
			case diag.Warning:
				nWarn++
			}
			if d.Severity > min {
				continue
			}
			p.diagnostic(file.path, d)
		}
	}

	p.summary(len(files), nErr, nWarn)
	if nErr > 0 || (cfg.Strict && nWarn > 0) {
		return fmt.Errorf("%d error(s), %d warning(s)", nErr, nWarn)
	}
	return nil
}

type scriptFile struct {
	path    string
	logical string
}

// scriptFiles expands the argument list into script files. Directory
// arguments are walked recursively and their contents keep paths
// relative to the argument, which is what schemas match against.
func scriptFiles(args []string) ([]scriptFile, error) {
	var out []scriptFile
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, scriptFile{path: arg, logical: arg})
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".txt") {
				return nil
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				rel = path
			}
			out = append(out, scriptFile{path: path, logical: rel})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func braceDiagnostics(report parse.BraceReport) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, pos := range report.UnclosedOpens {
		out = append(out, braceDiagnostic("unmatched opening brace", pos))
	}
	for _, pos := range report.StrayCloses {
		out = append(out, braceDiagnostic("unmatched closing brace", pos))
	}
	return out
}

func braceDiagnostic(msg string, pos token.Pos) diag.Diagnostic {
	end := pos
	end.Character++
	return diag.Diagnostic{
		Code:     "pdx-brace",
		Severity: diag.Error,
		Message:  msg,
		Range:    token.Range{Start: pos, End: end},
	}
}
