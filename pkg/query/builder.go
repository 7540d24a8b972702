package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SortField is one ORDER BY term. Field is the logical name from the
// ProjectionMap, not the column.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses "Name1,-ID" style input. A leading "-" sorts
// descending. Empty input yields nil.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// params collects bind arguments and hands out their $N placeholders.
type params struct {
	args []any
}

func (p *params) bind(v any) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

// A condition renders one WHERE term, binding its arguments as it goes.
type condition func(p *params) string

// Builder assembles SELECT statements over a single projection.
// Conditions are joined with AND.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder. defaultSort applies when no valid sort is
// requested through OrderByFields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// WhereEquals adds field = value. Nil values are skipped.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	column := b.projection.Column(field)
	b.conditions = append(b.conditions, func(p *params) string {
		return column + " = " + p.bind(value)
	})
	return b
}

// likeEscaper makes %, _ and the escape character itself match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// WhereSearch adds a case-insensitive substring match OR'd across fields.
// A nil or empty search is skipped. Both sides are folded with the
// database's LOWER so the match agrees with its own case rules.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + likeEscaper.Replace(*search) + "%"
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = b.projection.Column(f)
	}

	b.conditions = append(b.conditions, func(p *params) string {
		terms := make([]string, len(columns))
		for i, col := range columns {
			terms[i] = "LOWER(" + col + ") LIKE LOWER(" + p.bind(pattern) + `) ESCAPE '\'`
		}
		return "(" + strings.Join(terms, " OR ") + ")"
	})
	return b
}

// OrderByFields replaces the default sort. Fields outside the projection are
// dropped, and if none remain the default sort still applies.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// Build returns the full SELECT with conditions and ordering.
func (b *Builder) Build() (string, []any) {
	var p params
	sql := b.selectFrom() + b.where(&p) + b.orderBy()
	return sql, p.args
}

// BuildCount returns SELECT COUNT(*) with the same conditions as Build.
func (b *Builder) BuildCount() (string, []any) {
	var p params
	sql := "SELECT COUNT(*) FROM " + b.projection.Table() + b.where(&p)
	return sql, p.args
}

// BuildPage returns Build limited to one page. page is 1-indexed.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	var p params
	sql := fmt.Sprintf("%s%s%s LIMIT %d OFFSET %d",
		b.selectFrom(), b.where(&p), b.orderBy(), pageSize, (page-1)*pageSize)
	return sql, p.args
}

// BuildSingle selects the row whose idField equals id, ignoring any
// conditions added to the builder.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	var p params
	sql := b.selectFrom() + " WHERE " + b.projection.Column(idField) + " = " + p.bind(id)
	return sql, p.args
}

func (b *Builder) selectFrom() string {
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.Table()
}

func (b *Builder) where(p *params) string {
	if len(b.conditions) == 0 {
		return ""
	}
	terms := make([]string, len(b.conditions))
	for i, c := range b.conditions {
		terms[i] = c(p)
	}
	return " WHERE " + strings.Join(terms, " AND ")
}

func (b *Builder) orderBy() string {
	fields := make([]SortField, 0, len(b.sort))
	for _, f := range b.sort {
		if b.projection.Has(f.Field) {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	terms := make([]string, len(fields))
	for i, f := range fields {
		dir := " ASC"
		if f.Descending {
			dir = " DESC"
		}
		terms[i] = b.projection.Column(f.Field) + dir
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
