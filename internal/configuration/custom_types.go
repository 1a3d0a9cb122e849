package configuration

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// AxisInts is a per-axis integer triple. In the config file it can be given
// either as a list in axis order ([roll, pitch, yaw]) or as a map
// ({roll: .., pitch: .., yaw: ..}).
type AxisInts struct {
	Roll  int `json:"roll"`
	Pitch int `json:"pitch"`
	Yaw   int `json:"yaw"`
}

// AxisFloats is the floating-point counterpart of AxisInts.
type AxisFloats struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// axisValuesHookFunc returns a mapstructure decode hook that decodes both
// the list and the map form of AxisInts and AxisFloats.
func axisValuesHookFunc() mapstructure.DecodeHookFuncType {
	axisIntsType := reflect.TypeOf(AxisInts{})
	axisFloatsType := reflect.TypeOf(AxisFloats{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != axisIntsType && t != axisFloatsType {
			return data, nil
		}

		values, err := parseAxisTriple(data)
		if err != nil {
			return nil, err
		}
		if values == nil {
			// map form, let the default struct decoding handle it
			return data, nil
		}

		if t == axisIntsType {
			return AxisInts{
				Roll:  int(values[0]),
				Pitch: int(values[1]),
				Yaw:   int(values[2]),
			}, nil
		}
		return AxisFloats{
			Roll:  values[0],
			Pitch: values[1],
			Yaw:   values[2],
		}, nil
	}
}

// parseAxisTriple converts the list form into three float values. A nil
// result (without error) means the data was not a list.
func parseAxisTriple(data interface{}) ([]float64, error) {
	list, ok := data.([]interface{})
	if !ok {
		return nil, nil
	}
	if len(list) != 3 {
		return nil, fmt.Errorf("axis value list must have exactly 3 entries (roll, pitch, yaw), got %d", len(list))
	}

	result := make([]float64, 3)
	for i, entry := range list {
		value, err := anyToFloat(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid axis value %v: %w", entry, err)
		}
		result[i] = value
	}
	return result, nil
}

// anyToFloat converts numeric and string values to float64.
func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	}
}
