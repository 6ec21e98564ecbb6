package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/najadb/naja/internal/naerr"
)

// DecimalSize is the normalized (precision, scale) pair for decimal columns.
// All accepted size encodings normalize to this one integer pair.
type DecimalSize struct {
	Precision int
	Scale     int
}

// defaultDecimalScale is substituted when an encoding omits the scale.
const defaultDecimalScale = 2

// ParseDecimalSize normalizes a decimal column's size to a (precision, scale)
// pair. Four encodings are accepted:
//
//   - a pair: [10, 2] (also [2]int, []int, or a DecimalSize value)
//   - a comma-separated string: "10,2" ("10" defaults the scale to 2)
//   - a bare integer: 10 (scale defaults to 2)
//   - a float: 10.2 (the printed literal splits on the decimal point)
//
// The float form is ambiguous beyond one fractional digit (10.25 reads as
// scale 25); it is accepted for compatibility, but the pair form is the one
// to prefer.
func ParseDecimalSize(size any) (DecimalSize, error) {
	switch v := size.(type) {
	case DecimalSize:
		return v, nil
	case [2]int:
		return DecimalSize{Precision: v[0], Scale: v[1]}, nil
	case []int:
		return decimalSizeFromPair(len(v), func(i int) (int, error) { return v[i], nil })
	case []any:
		return decimalSizeFromPair(len(v), func(i int) (int, error) { return toInt(v[i]) })
	case int:
		return DecimalSize{Precision: v, Scale: defaultDecimalScale}, nil
	case int64:
		return DecimalSize{Precision: int(v), Scale: defaultDecimalScale}, nil
	case float64:
		return parseDecimalSizeString(strconv.FormatFloat(v, 'g', -1, 64), ".")
	case float32:
		return parseDecimalSizeString(strconv.FormatFloat(float64(v), 'g', -1, 32), ".")
	case string:
		return parseDecimalSizeString(v, ",")
	default:
		return DecimalSize{}, naerr.Newf(naerr.ErrInvalidDecimalSize,
			"unsupported decimal size encoding %T", size)
	}
}

// decimalSizeFromPair normalizes list encodings of length one or two.
func decimalSizeFromPair(n int, at func(int) (int, error)) (DecimalSize, error) {
	switch n {
	case 1:
		p, err := at(0)
		if err != nil {
			return DecimalSize{}, err
		}
		return DecimalSize{Precision: p, Scale: defaultDecimalScale}, nil
	case 2:
		p, err := at(0)
		if err != nil {
			return DecimalSize{}, err
		}
		s, err := at(1)
		if err != nil {
			return DecimalSize{}, err
		}
		return DecimalSize{Precision: p, Scale: s}, nil
	default:
		return DecimalSize{}, naerr.Newf(naerr.ErrInvalidDecimalSize,
			"decimal size pair must have one or two elements, got %d", n)
	}
}

// parseDecimalSizeString splits a textual size on sep and parses the parts.
// A single part defaults the scale to 2.
func parseDecimalSizeString(s, sep string) (DecimalSize, error) {
	parts := strings.Split(s, sep)
	switch len(parts) {
	case 1:
		p, err := parseDecimalPart(parts[0])
		if err != nil {
			return DecimalSize{}, err
		}
		return DecimalSize{Precision: p, Scale: defaultDecimalScale}, nil
	case 2:
		p, err := parseDecimalPart(parts[0])
		if err != nil {
			return DecimalSize{}, err
		}
		sc, err := parseDecimalPart(parts[1])
		if err != nil {
			return DecimalSize{}, err
		}
		return DecimalSize{Precision: p, Scale: sc}, nil
	default:
		return DecimalSize{}, naerr.Newf(naerr.ErrInvalidDecimalSize,
			"malformed decimal size %q", s)
	}
}

// parseDecimalPart parses one precision/scale component.
func parseDecimalPart(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, naerr.Newf(naerr.ErrInvalidDecimalSize,
			"malformed decimal size component %q", s)
	}
	return n, nil
}

// toInt coerces loosely typed pair elements (YAML decodes into any).
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, naerr.Newf(naerr.ErrInvalidDecimalSize,
			"decimal size component %v (%T) is not an integer", v, v)
	}
}

// String renders the pair as it appears inside the type parentheses.
func (d DecimalSize) String() string {
	return fmt.Sprintf("%d,%d", d.Precision, d.Scale)
}
