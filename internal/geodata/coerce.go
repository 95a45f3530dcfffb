package geodata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ColumnType is the inferred value type of a dataset column.
type ColumnType string

const (
	// TypeNumber marks columns whose non-null values are all numeric.
	TypeNumber ColumnType = "number"
	// TypeBool marks columns whose non-null values are all booleans.
	TypeBool ColumnType = "bool"
	// TypeString is the fallback type for text and mixed columns.
	TypeString ColumnType = "string"
)

// inferColumnType classifies a column from its decoded values. Null values
// are ignored; a column with no non-null values, or with mixed scalar types,
// falls back to string.
func inferColumnType(values []interface{}) ColumnType {
	inferred := ColumnType("")
	for _, v := range values {
		if v == nil {
			continue
		}
		var t ColumnType
		switch v.(type) {
		case float64, json.Number:
			t = TypeNumber
		case bool:
			t = TypeBool
		default:
			t = TypeString
		}
		if inferred == "" {
			inferred = t
		} else if inferred != t {
			return TypeString
		}
	}
	if inferred == "" {
		return TypeString
	}
	return inferred
}

// CoerceValue casts a single edited grid value back to the column's original
// type. Grid edits always arrive as strings, so numeric and boolean columns
// are parsed; values already of the right type pass through untouched, as do
// nulls and non-scalar values in string columns.
func CoerceValue(v interface{}, t ColumnType) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case TypeNumber:
		switch val := v.(type) {
		case float64:
			return val, nil
		case json.Number:
			f, err := val.Float64()
			if err != nil {
				return nil, fmt.Errorf("cast %q to number: %w", val, err)
			}
			return f, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				return nil, fmt.Errorf("cast %q to number: %w", val, err)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("cast %T to number", v)
		}
	case TypeBool:
		switch val := v.(type) {
		case bool:
			return val, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(val))
			if err != nil {
				return nil, fmt.Errorf("cast %q to bool: %w", val, err)
			}
			return b, nil
		default:
			return nil, fmt.Errorf("cast %T to bool", v)
		}
	default:
		return v, nil
	}
}

// CoerceRows casts every value of every grid row to the dataset's original
// column types. The first non-castable value fails the whole call with a
// message naming the column.
func (d *Dataset) CoerceRows(rows []map[string]interface{}) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, len(rows))
	for i, row := range rows {
		coerced := make(map[string]interface{}, len(row))
		for col, v := range row {
			t, ok := d.types[col]
			if !ok {
				t = TypeString
			}
			cv, err := CoerceValue(v, t)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i, col, err)
			}
			coerced[col] = cv
		}
		out = append(out, coerced)
	}
	return out, nil
}
