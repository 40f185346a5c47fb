package frame

import "strings"

// Compare orders two cell values: nil first, then numbers (compared
// numerically, int and float interchangeably), then strings (lexically).
// It returns -1, 0 or 1.
func Compare(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	af, aNum := ToFloat(a)
	bf, bNum := ToFloat(b)
	switch {
	case aNum && bNum:
		if ai, ok := ToInt(a); ok {
			if bi, ok := ToInt(b); ok {
				return compareInt(ai, bi)
			}
		}
		if af < bf {
			return -1
		} else if af > bf {
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}

	return strings.Compare(formatValue(a), formatValue(b))
}

func compareInt(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// CompareTuples orders two equal-length value tuples lexicographically.
func CompareTuples(a, b []interface{}) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt(int64(len(a)), int64(len(b)))
}

// Equal reports whether two cell values are equal under Compare.
func Equal(a, b interface{}) bool {
	return Compare(a, b) == 0
}
