package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-form-keeper/models"
)

// ColumnValue converts a submitted JSON value into a driver value suitable
// for the field's column. Absent or blank values become NULL.
func ColumnValue(field models.Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch MapLogicalType(field.Type) {
	case ColumnBoolean:
		return booleanValue(v)
	case ColumnNumeric:
		return numericValue(v)
	case ColumnDate:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("date value of %q must be a string, got %T", field.Name, v)
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return s, nil
	default:
		return textValue(v)
	}
}

// ProjectRow builds the column list and values of a projected row for the
// given fields. Every field contributes a column; missing keys become NULL.
func ProjectRow(fields []models.Field, payload map[string]any) ([]string, []any, error) {
	columns := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for _, f := range fields {
		v, err := ColumnValue(f, payload[f.Name])
		if err != nil {
			return nil, nil, err
		}
		columns = append(columns, f.Name)
		values = append(values, v)
	}
	return columns, values, nil
}

func booleanValue(v any) (any, error) {
	b, set, err := ParseBool(v)
	if err != nil || !set {
		return nil, err
	}
	return b, nil
}

// ParseBool reads a submitted checkbox value. set is false for nil and blank
// strings. Strings accept true/on/yes/1 and false/off/no/0 in any case;
// numbers are true when non-zero.
func ParseBool(v any) (value, set bool, err error) {
	switch b := v.(type) {
	case nil:
		return false, false, nil
	case bool:
		return b, true, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "":
			return false, false, nil
		case "true", "on", "yes", "1":
			return true, true, nil
		case "false", "off", "no", "0":
			return false, true, nil
		}
		return false, false, fmt.Errorf("cannot use %q as boolean", b)
	case json.Number:
		f, err := b.Float64()
		if err != nil {
			return false, false, err
		}
		return f != 0, true, nil
	case float64:
		return b != 0, true, nil
	default:
		return false, false, fmt.Errorf("cannot use %T as boolean", v)
	}
}

func numericValue(v any) (any, error) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), nil
	case float64:
		return n, nil
	case int:
		return n, nil
	case int64:
		return n, nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil, nil
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("cannot use %q as number", n)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("cannot use %T as number", v)
	}
}

func textValue(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case bool, float64:
		return fmt.Sprint(s), nil
	default:
		// arrays and objects (multi-select, file metadata) are kept as JSON text
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
}
