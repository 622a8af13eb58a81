package querybuilder

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

// Operator is the comparison a filter applies to its column.
type Operator string

const (
	// Contains is a case-insensitive substring match.
	Contains Operator = "ILIKE"
	Equals   Operator = "="
	AtLeast  Operator = ">="
	AtMost   Operator = "<="
)

// ValueKind tells Build how to parse a raw query-string value.
type ValueKind int

const (
	Text ValueKind = iota
	Integer
	Decimal
)

// Filter maps one query-string parameter onto one column predicate.
type Filter struct {
	Param  string
	Column string
	Op     Operator
	Kind   ValueKind
}

// Range pairs the parameters bounding the same dimension. When both are
// present, Min must not exceed Max.
type Range struct {
	Min string
	Max string
}

// FilterSet is the fixed search definition of one resource. The projection
// (Columns) never depends on which filters were supplied.
type FilterSet struct {
	Table   string
	Columns []string
	Filters []Filter
	Ranges  []Range
	OrderBy []string
}

type parsedValue struct {
	kind    ValueKind
	arg     any
	integer int64
	decimal float64
}

// exceeds reports whether v is strictly greater than other. Both values come
// from the same range pair and share a kind.
func (v parsedValue) exceeds(other parsedValue) bool {
	if v.kind == Integer && other.kind == Integer {
		return v.integer > other.integer
	}
	return v.asFloat() > other.asFloat()
}

func (v parsedValue) asFloat() float64 {
	if v.kind == Integer {
		return float64(v.integer)
	}
	return v.decimal
}

// Build renders a single SELECT for the recognized parameters present in
// params. Parameters not declared in the set are ignored. Present predicates
// are joined with AND in declaration order.
func (fs FilterSet) Build(params map[string]string) (Statement, error) {
	if fs.Table == "" || len(fs.Columns) == 0 {
		return Statement{}, errors.New("querybuilder: filter set requires a table and columns")
	}
	for _, f := range fs.Filters {
		if f.Op == Contains && f.Kind != Text {
			return Statement{}, fmt.Errorf("querybuilder: filter %q uses %s on a non-text value", f.Param, f.Op)
		}
	}

	values := make(map[string]parsedValue, len(fs.Filters))
	invalid := map[string]any{}
	for _, f := range fs.Filters {
		raw, ok := params[f.Param]
		if !ok {
			continue
		}
		val, err := parseValue(f.Kind, raw)
		if err != nil {
			invalid[f.Param] = err.Error()
			continue
		}
		values[f.Param] = val
	}
	if len(invalid) > 0 {
		return Statement{}, apperrors.NewValidationError("invalid filter value", invalid)
	}

	for _, r := range fs.Ranges {
		lo, hasLo := values[r.Min]
		hi, hasHi := values[r.Max]
		if hasLo && hasHi && lo.exceeds(hi) {
			return Statement{}, apperrors.NewValidationError(
				fmt.Sprintf("%s cannot be greater than %s", r.Min, r.Max),
				map[string]any{r.Min: lo.arg, r.Max: hi.arg},
			)
		}
	}

	var (
		clauses []string
		args    []any
	)
	for _, f := range fs.Filters {
		val, ok := values[f.Param]
		if !ok {
			continue
		}
		arg := val.arg
		if f.Op == Contains {
			arg = "%" + escapeLike(arg.(string)) + "%"
		}
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", ident(f.Column), f.Op, len(args)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", columnList(fs.Columns), ident(fs.Table))
	if len(clauses) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(clauses, " AND "))
	}
	if len(fs.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(columnList(fs.OrderBy))
	}
	return Statement{SQL: b.String(), Args: args}, nil
}

func parseValue(kind ValueKind, raw string) (parsedValue, error) {
	switch kind {
	case Integer:
		// Integer columns are 32-bit.
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if errors.Is(err, strconv.ErrRange) {
			return parsedValue{}, errors.New("is out of range")
		}
		if err != nil {
			return parsedValue{}, errors.New("must be an integer")
		}
		return parsedValue{kind: Integer, arg: n, integer: n}, nil
	case Decimal:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return parsedValue{}, errors.New("must be a number")
		}
		return parsedValue{kind: Decimal, arg: f, decimal: f}, nil
	default:
		return parsedValue{kind: Text, arg: raw}, nil
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
