// Package patch builds minimal UPDATE statements from partial JSON request bodies.
//
// An entity declares its updatable fields once as a Schema. Build compares the
// requested values with the current row: absent fields are skipped, equal ones
// are reported as unchanged and only the rest get bind parameters, in the
// order the fields were declared.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/iudanet/learnhub/internal/validation"
)

// ErrNoChanges is returned by storage when asked to execute an empty update.
var ErrNoChanges = errors.New("no changes detected")

// Kind задает тип значения поля в теле запроса
type Kind int

const (
	// String - непустая строка, сравнивается после TrimSpace
	String Kind = iota
	// Int - целое число
	Int
	// Bool - булево значение
	Bool
	// NullableString - строка или null; пустая строка трактуется как null
	NullableString
)

// Placeholder renders the n-th (1-based) bind parameter of a statement.
type Placeholder func(n int) string

// Question is the SQLite placeholder style.
func Question(int) string { return "?" }

// Dollar is the PostgreSQL placeholder style.
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

// Field describes one updatable column of R.
type Field[R any] struct {
	Current   func(R) any         // текущее значение в строке
	Normalize func(string) string // необязательно, применяется к строкам после TrimSpace
	Name      string              // ключ в JSON
	Column    string              // колонка в таблице
	Label     string              // человекочитаемое имя для сообщений
	Rules     string              // теги go-playground/validator, например "min=3,max=100"
	Kind      Kind
}

// Schema is the ordered list of updatable fields of an entity.
type Schema[R any] struct {
	byName map[string]int
	fields []Field[R]
}

// NewSchema panics on duplicate field names: schemas are package-level values
// and a duplicate is a programming error.
func NewSchema[R any](fields ...Field[R]) *Schema[R] {
	s := &Schema[R]{
		fields: fields,
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := s.byName[f.Name]; dup {
			panic("patch: duplicate field " + f.Name)
		}
		s.byName[f.Name] = i
	}
	return s
}

// Fields returns the request keys in declaration order.
func (s *Schema[R]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Update is the result of Build.
type Update struct {
	// Unchanged maps request keys that matched the current row to a message.
	Unchanged map[string]string
	values    map[string]any
	columns   []string
	args      []any
}

// Empty reports whether there is nothing to write.
func (u *Update) Empty() bool {
	return len(u.columns) == 0
}

// Columns returns the assigned columns in declaration order.
func (u *Update) Columns() []string {
	return append([]string(nil), u.columns...)
}

// Args returns the bind values for the SET clause, in the same order as Columns.
func (u *Update) Args() []any {
	return append([]any(nil), u.args...)
}

// Value returns the new value of a changed field.
func (u *Update) Value(name string) (any, bool) {
	v, ok := u.values[name]
	return v, ok
}

// SetClause renders "col = p1, col2 = p2" without the SET keyword.
func (u *Update) SetClause(ph Placeholder) string {
	parts := make([]string, len(u.columns))
	for i, c := range u.columns {
		parts[i] = c + " = " + ph(i+1)
	}
	return strings.Join(parts, ", ")
}

// KeyPlaceholder renders the placeholder for the primary key bound after the SET values.
func (u *Update) KeyPlaceholder(ph Placeholder) string {
	return ph(len(u.columns) + 1)
}

// DecodeBody reads a JSON object and keeps every value raw so that absent keys
// can be told apart from explicit nulls.
func DecodeBody(r io.Reader) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, &validation.Error{Rule: "json", Message: "invalid request body"}
	}
	if body == nil {
		// тело "null"
		body = map[string]json.RawMessage{}
	}
	return body, nil
}

// Build compares the requested values with current and returns the minimal update.
// Errors are always *validation.Error and do not depend on map iteration order.
func (s *Schema[R]) Build(current R, body map[string]json.RawMessage) (*Update, error) {
	unknown := make([]string, 0)
	for key := range body {
		if _, ok := s.byName[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &validation.Error{Field: unknown[0], Rule: "unknown", Message: "unknown field"}
	}

	u := &Update{
		Unchanged: make(map[string]string),
		values:    make(map[string]any),
	}

	for _, f := range s.fields {
		raw, present := body[f.Name]
		if !present {
			continue
		}

		value, err := f.decode(raw)
		if err != nil {
			return nil, err
		}

		if equal(f.Current(current), value) {
			u.Unchanged[f.Name] = fmt.Sprintf("%s is already the current one, nothing changed", f.Label)
			continue
		}

		u.columns = append(u.columns, f.Column)
		u.args = append(u.args, value)
		u.values[f.Name] = value
	}

	return u, nil
}

func (f Field[R]) decode(raw json.RawMessage) (any, error) {
	isNull := bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
	if isNull && f.Kind != NullableString {
		return nil, &validation.Error{Field: f.Name, Rule: "required", Message: "must not be null"}
	}

	var value any
	switch f.Kind {
	case String, NullableString:
		if isNull {
			return nil, nil
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &validation.Error{Field: f.Name, Rule: "string", Message: "must be a string"}
		}
		v = strings.TrimSpace(v)
		if f.Normalize != nil {
			v = f.Normalize(v)
		}
		if v == "" {
			if f.Kind == NullableString {
				return nil, nil
			}
			return nil, &validation.Error{Field: f.Name, Rule: "required", Message: "must not be empty"}
		}
		value = v
	case Int:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &validation.Error{Field: f.Name, Rule: "int", Message: "must be an integer"}
		}
		value = v
	case Bool:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &validation.Error{Field: f.Name, Rule: "bool", Message: "must be a boolean"}
		}
		value = v
	default:
		return nil, fmt.Errorf("patch: unsupported kind %d for field %s", f.Kind, f.Name)
	}

	if f.Rules != "" {
		if err := validation.Var(f.Name, value, f.Rules); err != nil {
			return nil, err
		}
	}

	return value, nil
}

// equal сравнивает текущее значение с новым; строки сравниваются без пробелов по краям
func equal(current, requested any) bool {
	return normalize(current) == normalize(requested)
}

func normalize(v any) any {
	switch t := v.(type) {
	case *string:
		if t == nil {
			return nil
		}
		return strings.TrimSpace(*t)
	case string:
		return strings.TrimSpace(t)
	case int:
		return int64(t)
	default:
		return v
	}
}
