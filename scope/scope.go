// Package scope models the typed context graph of the script
// language: which navigation links, iterable lists, triggers and
// effects are available from each scope type, and how dot-separated
// link chains move between types.
package scope

import "strings"

// UniversalLinks are valid from every scope type and preserve the
// current type.
var UniversalLinks = map[string]bool{
	"root":     true,
	"this":     true,
	"prev":     true,
	"from":     true,
	"fromfrom": true,
}

// Def describes one scope type. Links maps a link name to the scope
// type it navigates to; an empty target means the link keeps the
// current type.
type Def struct {
	Links    map[string]string `yaml:"links"`
	Lists    []string          `yaml:"lists"`
	Triggers []string          `yaml:"triggers"`
	Effects  []string          `yaml:"effects"`
}

// Registry is the set of scope type definitions. It is built once at
// load time and read-only afterwards, safe for concurrent use.
type Registry struct {
	defs map[string]*Def
}

func NewRegistry(defs map[string]*Def) *Registry {
	if defs == nil {
		defs = map[string]*Def{}
	}
	return &Registry{defs: defs}
}

// Types returns the known scope type names.
func (r *Registry) Types() []string {
	res := make([]string, 0, len(r.defs))
	for name := range r.defs {
		res = append(res, name)
	}
	return res
}

// Def returns the definition for a scope type, or nil when unknown.
func (r *Registry) Def(scopeType string) *Def {
	return r.defs[scopeType]
}

// HasTrigger reports whether name is a trigger usable in scopeType.
func (r *Registry) HasTrigger(scopeType, name string) bool {
	d := r.defs[scopeType]
	return d != nil && contains(d.Triggers, name)
}

// HasEffect reports whether name is an effect usable in scopeType.
func (r *Registry) HasEffect(scopeType, name string) bool {
	d := r.defs[scopeType]
	return d != nil && contains(d.Effects, name)
}

// HasList reports whether base is an iterable list in scopeType.
func (r *Registry) HasList(scopeType, base string) bool {
	d := r.defs[scopeType]
	return d != nil && contains(d.Lists, base)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// ValidateChain walks a dot-separated chain of link names starting
// from scope type from. It returns whether every step is a valid
// link and the scope type the chain resolves to. The empty chain is
// valid and stays in place. A link whose declared target is not a
// known scope type keeps the current type: permissiveness over a
// registry data gap, not a silent error.
func (r *Registry) ValidateChain(chain, from string) (bool, string) {
	cur := from
	if chain == "" {
		return true, cur
	}
	for _, link := range strings.Split(chain, ".") {
		if UniversalLinks[link] {
			continue
		}
		d := r.defs[cur]
		if d == nil {
			return false, cur
		}
		target, ok := d.Links[link]
		if !ok {
			return false, cur
		}
		if target == "" || r.defs[target] == nil {
			continue
		}
		cur = target
	}
	return true, cur
}

// ChainValidFromAny reports whether chain resolves from at least one
// known scope type. Used by the scope-reference pattern check when
// the anchoring type cannot be determined from the schema alone.
func (r *Registry) ChainValidFromAny(chain string) bool {
	if chain == "" {
		return false
	}
	for name := range r.defs {
		if ok, _ := r.ValidateChain(chain, name); ok {
			return true
		}
	}
	// a chain of only universal links is valid from any type even
	// when the registry is empty
	if len(r.defs) == 0 {
		for _, link := range strings.Split(chain, ".") {
			if !UniversalLinks[link] {
				return false
			}
		}
		return true
	}
	return false
}
