package config

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Values maps a configuration name to its scalar value.
type Values map[string]cty.Value

// Names returns the value names in sorted order.
func (v Values) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a configured value.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// ValidateScalar rejects anything that is not a known, non-null string,
// number or bool.
func ValidateScalar(name string, val cty.Value) error {
	if val.IsNull() {
		return fmt.Errorf("config value %q is null", name)
	}
	if !val.IsWhollyKnown() {
		return fmt.Errorf("config value %q is not known", name)
	}
	if !val.Type().IsPrimitiveType() {
		return fmt.Errorf("config value %q must be a string, number or bool, got %s", name, val.Type().FriendlyName())
	}
	return nil
}

// ToGo converts a cty.Value into plain Go values (string, float64, bool,
// map[string]any, []any) for logging and display.
func ToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if ty.IsPrimitiveType() {
		switch ty {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			f, _ := val.AsBigFloat().Float64()
			return f, nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", ty.FriendlyName())
		}
	}
	if ty.IsObjectType() || ty.IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			conv, err := ToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = conv
		}
		return out, nil
	}
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			conv, err := ToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty.Type for conversion: %s", ty.FriendlyName())
}

// Loggable renders val for a log attribute, never failing.
func Loggable(val cty.Value) any {
	conv, err := ToGo(val)
	if err != nil {
		return fmt.Sprintf("[unloggable cty.Value: %v]", err)
	}
	return conv
}
