package database

import (
	"fmt"
	"strings"
)

// Args collects positional query arguments and hands out their $n placeholders.
type Args struct {
	values []any
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

func (a *Args) Values() []any {
	return a.values
}

// Predicate renders one SQL condition, binding its values into args.
type Predicate func(args *Args) string

// Where joins the non-nil predicates with AND. It returns an empty string when
// there is nothing to filter on, otherwise a clause starting with " WHERE ".
func Where(args *Args, preds ...Predicate) string {
	conds := make([]string, 0, len(preds))

	for _, p := range preds {
		if p == nil {
			continue
		}

		conds = append(conds, p(args))
	}

	if len(conds) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(conds, " AND ")
}

// Compare returns a predicate comparing column against *v, or nil when v is nil.
func Compare[T any](column, op string, v *T) Predicate {
	if v == nil {
		return nil
	}

	val := *v

	return func(args *Args) string {
		return column + " " + op + " " + args.Add(val)
	}
}

// Assignments builds the SET list of a partial UPDATE.
type Assignments struct {
	args  *Args
	parts []string
}

func NewAssignments(args *Args) *Assignments {
	return &Assignments{args: args}
}

// Set assigns v to column.
func (a *Assignments) Set(column string, v any) {
	a.parts = append(a.parts, column+" = "+a.args.Add(v))
}

func (a *Assignments) Len() int {
	return len(a.parts)
}

func (a *Assignments) String() string {
	return strings.Join(a.parts, ", ")
}
