package settings

import (
	"fmt"

	"github.com/spf13/cast"
)

// Values is the flat settings mapping the host passes to the plugin.
type Values map[string]any

// Has reports whether key is present with a non-nil value.
func (v Values) Has(key string) bool {
	val, ok := v[key]
	return ok && val != nil
}

// String returns the value for key as a string, or def when key is absent.
// A present empty string is returned as is.
func (v Values) String(key, def string) string {
	if !v.Has(key) {
		return def
	}
	return cast.ToString(v[key])
}

// Float returns the value for key as a float64, or def when key is absent.
// Numeric strings such as "0.5" are accepted.
func (v Values) Float(key string, def float64) (float64, error) {
	if !v.Has(key) {
		return def, nil
	}
	f, err := cast.ToFloat64E(v[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// Bool returns the value for key as a bool, or def when key is absent.
func (v Values) Bool(key string, def bool) (bool, error) {
	if !v.Has(key) {
		return def, nil
	}
	b, err := cast.ToBoolE(v[key])
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
