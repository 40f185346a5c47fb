package frame

import (
	"fmt"
	"strconv"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// NewInt creates an int64 series.
func NewInt(name string, data []int64) *dataframe.SeriesInt64 {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		vals[i] = v
	}
	return dataframe.NewSeriesInt64(name, nil, vals...)
}

// NewReal creates a float64 series.
func NewReal(name string, data []float64) *dataframe.SeriesFloat64 {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		vals[i] = v
	}
	return dataframe.NewSeriesFloat64(name, nil, vals...)
}

// NewCategorical creates a string series.
func NewCategorical(name string, data []string) *dataframe.SeriesString {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		vals[i] = v
	}
	return dataframe.NewSeriesString(name, nil, vals...)
}

// seriesLike creates a series named name, with the same storage type as s,
// holding vals.
func seriesLike(s dataframe.Series, name string, vals []interface{}) dataframe.Series {
	switch s.(type) {
	case *dataframe.SeriesInt64:
		return dataframe.NewSeriesInt64(name, nil, vals...)
	case *dataframe.SeriesFloat64:
		return dataframe.NewSeriesFloat64(name, nil, vals...)
	default:
		return dataframe.NewSeriesString(name, nil, vals...)
	}
}

// normalizeSeries converts any series that is not int64, float64 or string
// into a string series so a Table only ever holds those three storage types.
func normalizeSeries(s dataframe.Series) dataframe.Series {
	switch s.(type) {
	case *dataframe.SeriesInt64, *dataframe.SeriesFloat64, *dataframe.SeriesString:
		return s
	}
	n := s.NRows()
	vals := make([]interface{}, n)
	for i := 0; i < n; i++ {
		v := s.Value(i)
		if v == nil {
			continue
		}
		vals[i] = formatValue(v)
	}
	return dataframe.NewSeriesString(s.Name(), nil, vals...)
}

func isNumericSeries(s dataframe.Series) bool {
	switch s.(type) {
	case *dataframe.SeriesInt64, *dataframe.SeriesFloat64:
		return true
	}
	return false
}

// inferKind derives a column kind from its storage type and contents.
func inferKind(s dataframe.Series) Kind {
	switch s.(type) {
	case *dataframe.SeriesInt64:
		if isBinaryInt(s) {
			return KindBinary
		}
		return KindInt
	case *dataframe.SeriesFloat64:
		return KindReal
	case *dataframe.SeriesString:
		if isBinaryLabel(s) {
			return KindBinary
		}
		return KindCategorical
	}
	return KindUnknown
}

func isBinaryInt(s dataframe.Series) bool {
	n := s.NRows()
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		v, ok := ToInt(s.Value(i))
		if !ok || (v != 0 && v != 1) {
			return false
		}
	}
	return true
}

func isBinaryLabel(s dataframe.Series) bool {
	n := s.NRows()
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		v, ok := s.Value(i).(string)
		if !ok || (v != "yes" && v != "no") {
			return false
		}
	}
	return true
}

// ToFloat converts a numeric cell value to float64.
// Returns (value, ok) where ok is false if nil or not numeric.
func ToFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int64:
		return float64(val), true
	case int:
		return float64(val), true
	case float32:
		return float64(val), true
	case int32:
		return float64(val), true
	default:
		return 0, false
	}
}

// ToInt converts an integral cell value to int64.
func ToInt(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	default:
		return 0, false
	}
}

// formatValue renders a cell value the way it appears in the source file.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// FormatValue renders a cell value as text. Nil renders as the empty string.
func FormatValue(v interface{}) string {
	return formatValue(v)
}
