package main

import "github.com/threatgrid/jqcore"

// namedFilters is the fixed set of example filters the CLI exposes.
// Each one is built directly from jqcore.Filter constructors -- parsing
// jq source text is out of scope for this tool, by design.
var namedFilters = map[string]func() *jqcore.Filter{
	"identity": func() *jqcore.Filter { return jqcore.Id() },
	"keys":     func() *jqcore.Filter { return jqcore.KeysF() },
	"add": func() *jqcore.Filter {
		dotDot := jqcore.PathF(jqcore.Id(), jqcore.Path{{Kind: jqcore.PartIter}})
		body := jqcore.MathF(jqcore.Id(), jqcore.OpAdd, jqcore.VarF(0))
		return jqcore.ReduceF(dotDot, jqcore.NullLit(), body)
	},
	"flatten-recurse": func() *jqcore.Filter {
		return jqcore.RecurseF(jqcore.RecurseDot())
	},
	"sort-desc": func() *jqcore.Filter {
		return jqcore.PipeF(jqcore.SortF(), false, jqcore.ReverseF())
	},
}
