package verification

import (
	"fmt"
	"strings"

	"github.com/google/mangle/ast"
)

// Fact is one extensional datum staged for the audit store: a predicate
// name plus positional arguments. Only the argument kinds the audit emits
// are supported (ints for object ids and rule indexes, strings for
// attribute names and cell values).
type Fact struct {
	Predicate string
	Args      []interface{}
}

// String renders the fact in Datalog source form, for diagnostics.
func (f Fact) String() string {
	args := make([]string, 0, len(f.Args))
	for _, arg := range f.Args {
		switch v := arg.(type) {
		case string:
			args = append(args, fmt.Sprintf("%q", v))
		case int:
			args = append(args, fmt.Sprintf("%d", v))
		case int64:
			args = append(args, fmt.Sprintf("%d", v))
		default:
			args = append(args, fmt.Sprintf("%v", v))
		}
	}
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(args, ", "))
}

// ToAtom converts the fact to an AST atom for direct store insertion.
func (f Fact) ToAtom() (ast.Atom, error) {
	terms := make([]ast.BaseTerm, 0, len(f.Args))
	for _, arg := range f.Args {
		switch v := arg.(type) {
		case string:
			terms = append(terms, ast.String(v))
		case int:
			terms = append(terms, ast.Number(int64(v)))
		case int64:
			terms = append(terms, ast.Number(v))
		default:
			return ast.Atom{}, fmt.Errorf("unsupported fact argument %T in %s", arg, f.Predicate)
		}
	}
	return ast.NewAtom(f.Predicate, terms...), nil
}

// pair reads an atom of the shape pred(Number, Number) back into ints.
func pair(a ast.Atom) (int, int, error) {
	if len(a.Args) != 2 {
		return 0, 0, fmt.Errorf("atom %s has %d args, want 2", a.Predicate.Symbol, len(a.Args))
	}
	first, err := number(a.Args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("atom %s: %w", a.Predicate.Symbol, err)
	}
	second, err := number(a.Args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("atom %s: %w", a.Predicate.Symbol, err)
	}
	return first, second, nil
}

func number(term ast.BaseTerm) (int, error) {
	c, ok := term.(ast.Constant)
	if !ok || c.Type != ast.NumberType {
		return 0, fmt.Errorf("term %v is not a number constant", term)
	}
	return int(c.NumValue), nil
}
