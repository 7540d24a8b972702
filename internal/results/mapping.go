package results

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/flames/internal/flames"
	"github.com/JaimeStill/flames/pkg/query"
	"github.com/JaimeStill/flames/pkg/repository"
)

var projection = query.
	NewProjectionMap("", "flames_results", "f").
	Project("id", "ID").
	Project("name1", "Name1").
	Project("name2", "Name2").
	Project("result", "Result").
	Project("created_at", "CreatedAt")

var newestFirst = query.SortField{
	Field:      "ID",
	Descending: true,
}

// Filters narrows a history listing. Nil fields are ignored.
type Filters struct {
	Result *flames.Label `json:"result,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Result == nil {
		return b
	}
	return b.WhereEquals("Result", string(*f.Result))
}

// FiltersFromQuery reads filters from URL query values. An unknown result
// label is dropped rather than matched.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("result"); v != "" {
		if label := flames.Label(v); label.Valid() {
			f.Result = &label
		}
	}
	return f
}

// ParseID parses a path id into a positive record id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func scanResult(s repository.Scanner) (Result, error) {
	var (
		r       Result
		label   string
		created timestamp
	)
	err := s.Scan(&r.ID, &r.Name1, &r.Name2, &label, &created)
	r.Result = flames.Label(label)
	r.CreatedAt = time.Time(created)
	return r, err
}

// timestamp accepts created_at as either driver-parsed time.Time (pgx, and
// modernc for TIMESTAMP columns) or the raw SQLite text form.
type timestamp time.Time

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t = timestamp(time.Time{})
		return nil
	}
	return fmt.Errorf("scan created_at: unsupported type %T", src)
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("scan created_at: unrecognized format %q", s)
}
