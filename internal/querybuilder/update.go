package querybuilder

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

// UpdateSpec describes a partial update of the single row identified by
// KeyColumn = KeyValue.
//
// Fields holds only the columns the caller wants to change. A column that is
// absent from Fields is left untouched; a column present with a nil value is
// set to NULL.
type UpdateSpec struct {
	Table     string
	KeyColumn string
	KeyValue  any
	Fields    map[string]any
	// Allowed lists the updatable columns. It also fixes the order in which
	// field values are bound.
	Allowed   []string
	Returning []string
}

// BuildUpdate renders spec as a single UPDATE statement.
//
// Field values are bound first as $1..$n following the order of Allowed, and
// the key value is bound last as $n+1, so the output does not depend on map
// iteration order.
func BuildUpdate(spec UpdateSpec) (Statement, error) {
	if spec.Table == "" || spec.KeyColumn == "" {
		return Statement{}, errors.New("querybuilder: update requires a table and key column")
	}
	if err := CheckFields(spec.KeyColumn, spec.Allowed, spec.Fields); err != nil {
		return Statement{}, err
	}

	sets := make([]string, 0, len(spec.Fields))
	args := make([]any, 0, len(spec.Fields)+1)
	seen := make(map[string]struct{}, len(spec.Fields))
	for _, col := range spec.Allowed {
		val, ok := spec.Fields[col]
		if !ok {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", ident(col), len(args)))
	}
	args = append(args, spec.KeyValue)

	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s SET %s WHERE %s = $%d",
		ident(spec.Table), strings.Join(sets, ", "), ident(spec.KeyColumn), len(args))
	if len(spec.Returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(columnList(spec.Returning))
	}
	return Statement{SQL: b.String(), Args: args}, nil
}

// CheckFields reports the validation error BuildUpdate would return for
// fields: an empty set, the key column, or any column outside allowed.
// Callers use it to reject a body before doing expensive work on its values.
func CheckFields(keyColumn string, allowed []string, fields map[string]any) error {
	if len(fields) == 0 {
		return apperrors.NewValidationError("no fields to update", nil)
	}
	if _, ok := fields[keyColumn]; ok {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s cannot be updated", keyColumn),
			map[string]any{"fields": []string{keyColumn}},
		)
	}

	permitted := make(map[string]struct{}, len(allowed))
	for _, col := range allowed {
		permitted[col] = struct{}{}
	}
	var unknown []string
	for name := range fields {
		if _, ok := permitted[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return apperrors.NewValidationError(
			"unknown or read-only fields: "+strings.Join(unknown, ", "),
			map[string]any{"fields": unknown},
		)
	}
	return nil
}
