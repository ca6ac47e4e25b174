package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
	FilterOperatorAny       = "any"
	FilterOperatorNotAny    = "not_any"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter is a single predicate on Table.Field. ArgName defaults to Field and must be unique within a query.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null any not_any"`
	Table    string
}

type predicate func(column, arg string, value any, args map[string]any) string

var predicates = map[string]predicate{
	FilterOperatorEq:        compare("="),
	FilterOperatorNotEq:     compare("!="),
	FilterOperatorLessEq:    compare("<="),
	FilterOperatorGreaterEq: compare(">="),
	FilterOperatorLike: func(column, arg string, value any, args map[string]any) string {
		args[arg] = fmt.Sprintf("%%%v%%", value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, arg)
	},
	FilterOperatorIn: in,
	FilterOperatorAny: func(column, arg string, value any, args map[string]any) string {
		args[arg] = value

		return fmt.Sprintf(":%s = ANY(%s)", arg, column)
	},
	FilterOperatorNotAny: func(column, arg string, value any, args map[string]any) string {
		args[arg] = value

		return fmt.Sprintf("NOT (:%s = ANY(COALESCE(%s, '{}')))", arg, column)
	},
	FilterIsNull: func(column, _ string, _ any, _ map[string]any) string {
		return column + " IS NULL"
	},
	FilterIsNotNull: func(column, _ string, _ any, _ map[string]any) string {
		return column + " IS NOT NULL"
	},
}

func compare(operator string) predicate {
	return func(column, arg string, value any, args map[string]any) string {
		args[arg] = value

		return fmt.Sprintf("%s %s :%s", column, operator, arg)
	}
}

// in binds one argument per element. An empty slice matches nothing; a scalar degrades to equality.
func in(column, arg string, value any, args map[string]any) string {
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return compare("=")(column, arg, value, args)
	}

	if val.Len() == 0 {
		return "FALSE"
	}

	named := make([]string, val.Len())
	for idx := range val.Len() {
		name := fmt.Sprintf("%s_%d", arg, idx)
		args[name] = val.Index(idx).Interface()
		named[idx] = ":" + name
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", "))
}

// GetWhereClause renders the predicate and its named arguments. Unknown operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	render, ok := predicates[f.Operator]
	if !ok {
		return "", args
	}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	arg := f.ArgName
	if arg == "" {
		arg = f.Field
	}

	return render(column, arg, f.Value, args), args
}

// FilterGroup joins Filter and nested FilterGroup values with Operator (AND when empty).
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
