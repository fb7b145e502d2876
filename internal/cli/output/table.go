package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders *Table and Table values directly. A struct becomes a
// FIELD/VALUE table, a slice of structs one row per element, and a map
// KEY/VALUE rows in key order.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	switch t := data.(type) {
	case *Table:
		return t.render(w, f.NoHeaders)
	case Table:
		return t.render(w, f.NoHeaders)
	}

	t, err := toTable(reflect.ValueOf(data))
	if err != nil {
		return err
	}
	return t.render(w, f.NoHeaders)
}

func toTable(v reflect.Value) (*Table, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return &Table{}, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := &Table{Headers: []string{"FIELD", "VALUE"}}
		for _, fld := range fields(v.Type()) {
			t.AddRow(fld.header, formatValue(v.Field(fld.index)))
		}
		return t, nil
	case reflect.Map:
		t := &Table{Headers: []string{"KEY", "VALUE"}}
		values := make(map[string]string, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			values[fmt.Sprint(iter.Key().Interface())] = formatValue(iter.Value())
		}
		names := make([]string, 0, len(values))
		for k := range values {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			t.AddRow(k, values[k])
		}
		return t, nil
	case reflect.Slice, reflect.Array:
		elem := v.Type().Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			t := &Table{Headers: []string{"VALUE"}}
			for i := 0; i < v.Len(); i++ {
				t.AddRow(formatValue(v.Index(i)))
			}
			return t, nil
		}
		cols := fields(elem)
		t := &Table{}
		for _, c := range cols {
			t.Headers = append(t.Headers, c.header)
		}
		for i := 0; i < v.Len(); i++ {
			row := reflect.Indirect(v.Index(i))
			cells := make([]string, len(cols))
			for j, c := range cols {
				if row.IsValid() {
					cells[j] = formatValue(row.Field(c.index))
				}
			}
			t.AddRow(cells...)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported type for table output: %s", v.Kind())
	}
}

type column struct {
	header string
	index  int
}

// fields lists exported fields named by their json tag, skipping "-".
func fields(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag == "-" {
			continue
		} else if tag != "" {
			name = tag
		}
		cols = append(cols, column{header: strings.ToUpper(name), index: i})
	}
	return cols
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch x := v.Interface().(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Local().Format(time.RFC3339)
	case time.Duration:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v.Interface())
}

// Table is a pre-built table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// render writes the table, optionally without the header row.
func (t *Table) render(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
