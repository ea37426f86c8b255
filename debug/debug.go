package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse    bool
	Schema   bool
	Scope    bool
	Cond     bool
	Validate bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("PDX_DEBUG_PARSE")
	d.Schema = boolEnv("PDX_DEBUG_SCHEMA")
	d.Scope = boolEnv("PDX_DEBUG_SCOPE")
	d.Cond = boolEnv("PDX_DEBUG_COND")
	d.Validate = boolEnv("PDX_DEBUG_VALIDATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Schema() bool {
	return d.Schema
}
func Scope() bool {
	return d.Scope
}
func Cond() bool {
	return d.Cond
}
func Validate() bool {
	return d.Validate
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
