// Package querybuilder turns request-shaped input into parameterized SQL.
//
// Builders are pure: they never touch a connection, and identical input always
// yields an identical Statement. Identifiers (tables and columns) come from the
// calling code, never from request data; values are always bound as positional
// parameters.
package querybuilder

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// Statement is SQL text with $n placeholders and the arguments bound to them,
// in placeholder order.
type Statement struct {
	SQL  string
	Args []any
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func columnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = ident(col)
	}
	return strings.Join(quoted, ", ")
}
