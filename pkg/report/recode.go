package report

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Mapping is a recode lookup keyed by the string form of a cell value.
// All values must be integers, all floats, or all strings.
type Mapping map[string]interface{}

// Recode returns a copy of t with every value of the named column replaced
// through m. The new column's storage type follows the mapping's values.
// A value with no entry fails with a *RecodeError naming the first such row.
func Recode(t *frame.Table, name string, m Mapping) (*frame.Table, error) {
	c, err := column(t, "recode", name)
	if err != nil {
		return nil, err
	}
	kind, err := mappingKind(name, m)
	if err != nil {
		return nil, err
	}

	vals := make([]interface{}, c.Len())
	for i := range vals {
		key := c.String(i)
		v, ok := m[key]
		if !ok {
			return nil, &RecodeError{Column: name, Row: i, Value: key}
		}
		vals[i] = normalizeLiteral(v)
	}

	var s dataframe.Series
	switch kind {
	case frame.KindInt:
		s = dataframe.NewSeriesInt64(name, nil, vals...)
	case frame.KindReal:
		s = dataframe.NewSeriesFloat64(name, nil, vals...)
	default:
		s = dataframe.NewSeriesString(name, nil, vals...)
	}
	return t.WithColumn(s)
}

// mappingKind reports the storage kind shared by every value of m.
func mappingKind(column string, m Mapping) (frame.Kind, error) {
	kind := frame.KindUnknown
	for _, v := range m {
		var k frame.Kind
		switch v.(type) {
		case int, int32, int64:
			k = frame.KindInt
		case float32, float64:
			k = frame.KindReal
		case string:
			k = frame.KindCategorical
		default:
			return 0, &QueryError{Op: "recode", Column: column, Err: ErrMixedMapping}
		}
		if kind != frame.KindUnknown && k != kind {
			return 0, &QueryError{Op: "recode", Column: column, Err: ErrMixedMapping}
		}
		kind = k
	}
	return kind, nil
}
