package expression

import "github.com/expr-lang/expr/vm"

type CompiledExpression struct {
	Program *vm.Program
	Text    string
}

type Expressions struct {
	Includes []CompiledExpression
	Excludes []CompiledExpression
}

// Empty reports whether no expression was compiled.
func (e *Expressions) Empty() bool {
	return e == nil || len(e.Includes) == 0 && len(e.Excludes) == 0
}
