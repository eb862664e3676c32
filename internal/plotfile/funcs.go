package plotfile

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// scriptFuncs is the function table available to every expression in a
// plotfile. It stays deliberately small: string shaping for titles and
// commands, numeric helpers for inline values.
func scriptFuncs() map[string]function.Function {
	return map[string]function.Function{
		"format": stdlib.FormatFunc,
		"upper":  stdlib.UpperFunc,
		"lower":  stdlib.LowerFunc,
		"min":    stdlib.MinFunc,
		"max":    stdlib.MaxFunc,
		"abs":    stdlib.AbsoluteFunc,
		"strlen": stdlib.StrlenFunc,
	}
}

// evalContext builds the evaluation context plotfile expressions are decoded
// with. Plotfiles have no variables, only functions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: scriptFuncs(),
	}
}
