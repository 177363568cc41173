package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/iwvelando/nol-forecast/pkg/mathutil"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// DecimalHookFunc returns a mapstructure hook that decodes YAML numbers and
// numeric strings into decimal.Decimal. Strings may carry thousands separators
// and a leading dollar sign; an empty string decodes to zero. Floats are
// rounded to cents.
func DecimalHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != decimalType {
			return data, nil
		}

		switch v := data.(type) {
		case decimal.Decimal:
			return v, nil
		case string:
			return ParseAmount(v)
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int32:
			return decimal.NewFromInt32(v), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case uint:
			return decimal.NewFromInt(int64(v)), nil
		case uint64:
			return decimal.NewFromInt(int64(v)), nil
		case float32:
			return mathutil.Round(decimal.NewFromFloat32(v)), nil
		case float64:
			return mathutil.Round(decimal.NewFromFloat(v)), nil
		default:
			return nil, fmt.Errorf("cannot decode %s into a decimal amount", f)
		}
	}
}

// ParseAmount parses a currency string such as "-$1,234.56".
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}
