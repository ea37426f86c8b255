package main

import (
	"os"

	"github.com/scott-cotton/cli"

	"github.com/pdxkit/go-pdxscript/schema"
	"github.com/pdxkit/go-pdxscript/scope"
	"github.com/pdxkit/go-pdxscript/validate"
)

type MainConfig struct {
	Rules   string `cli:"name=rules desc='directory containing schema, type and scope rule files'"`
	Color   bool   `cli:"name=color desc='force colored output'"`
	NoColor bool   `cli:"name=nocolor desc='disable colored output'"`

	Main *cli.Command
}

func (cfg *MainConfig) rulesDir() string {
	if cfg.Rules != "" {
		return cfg.Rules
	}
	return os.Getenv("PDX_RULES_DIR")
}

func (cfg *MainConfig) validator() (*validate.Validator, error) {
	dir := cfg.rulesDir()
	if dir == "" {
		return validate.New(schema.NewRegistry(), scope.NewRegistry(nil)), nil
	}
	schemas, err := schema.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	scopes, err := scope.LoadFile(dir + "/scopes.yaml")
	if err != nil {
		theLog.Warn("no scope definitions, link chains resolve against an empty registry", "err", err)
		scopes = scope.NewRegistry(nil)
	}
	return validate.New(schemas, scopes), nil
}

type CheckConfig struct {
	*MainConfig

	Strict bool   `cli:"name=strict desc='treat warnings as errors'"`
	Min    string `cli:"name=min desc='lowest severity to report: error, warning, information, hint'"`

	Check *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type SchemasConfig struct {
	*MainConfig

	Schemas *cli.Command
}
