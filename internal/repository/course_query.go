package repository

import (
	"fmt"
	"strings"
)

// predicate is a single AND-ed condition. When it names several columns they are OR-ed
// against the same bound value, e.g. (title LIKE $3 OR description LIKE $3).
type predicate struct {
	columns []string
	op      string
	value   interface{}
}

// selectQuery accumulates predicates and their values in order so placeholders and args
// never drift apart. Values are always bound; only column names and operators chosen by
// the repository reach the SQL text.
type selectQuery struct {
	selectClause string
	fixed        []string
	preds        []predicate
	orderBy      []string
}

func newSelectQuery(selectClause string, fixed ...string) *selectQuery {
	return &selectQuery{selectClause: selectClause, fixed: fixed}
}

// Where adds "column op $n".
func (q *selectQuery) Where(column, op string, value interface{}) *selectQuery {
	q.preds = append(q.preds, predicate{columns: []string{column}, op: op, value: value})
	return q
}

// WhereAny adds "(col1 op $n OR col2 op $n ...)".
func (q *selectQuery) WhereAny(op string, value interface{}, columns ...string) *selectQuery {
	if len(columns) == 0 {
		return q
	}
	q.preds = append(q.preds, predicate{columns: columns, op: op, value: value})
	return q
}

func (q *selectQuery) OrderBy(terms ...string) *selectQuery {
	q.orderBy = append(q.orderBy, terms...)
	return q
}

// Build renders the statement. LIMIT and OFFSET are always the last two parameters.
func (q *selectQuery) Build(limit, offset int) (string, []interface{}) {
	args := make([]interface{}, 0, len(q.preds)+2)
	conditions := append([]string(nil), q.fixed...)

	for _, p := range q.preds {
		args = append(args, p.value)
		placeholder := fmt.Sprintf("$%d", len(args))
		parts := make([]string, len(p.columns))
		for i, column := range p.columns {
			parts[i] = fmt.Sprintf("%s %s %s", column, p.op, placeholder)
		}
		if len(parts) == 1 {
			conditions = append(conditions, parts[0])
		} else {
			conditions = append(conditions, "("+strings.Join(parts, " OR ")+")")
		}
	}

	var b strings.Builder
	b.WriteString(q.selectClause)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBy, ", "))
	}

	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&b, " OFFSET $%d", len(args))

	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern lower-cases term and wraps it for a literal substring LIKE match.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
