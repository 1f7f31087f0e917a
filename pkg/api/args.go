package api

import "maps"

// Args represents a map of named values threaded through a run, used for
// node configuration data, accumulated state, and state patches
type Args map[string]any

// Apply shallow-merges the other set into a clone of this one. Keys in
// other overwrite keys already present; nested values are replaced, never
// merged. Returns the receiver unchanged when other is empty
func (a Args) Apply(other Args) Args {
	if len(other) == 0 {
		return a
	}
	res := maps.Clone(a)
	if res == nil {
		res = make(Args, len(other))
	}
	maps.Copy(res, other)
	return res
}

// GetString retrieves a string value, returning defaultValue if not found
// or wrong type
func (a Args) GetString(name, defaultValue string) string {
	val, ok := a[name]
	if !ok {
		return defaultValue
	}
	str, ok := val.(string)
	if !ok {
		return defaultValue
	}
	return str
}

// GetBool retrieves a boolean value, returning defaultValue if not found
// or wrong type
func (a Args) GetBool(name string, defaultValue bool) bool {
	val, ok := a[name]
	if !ok {
		return defaultValue
	}
	b, ok := val.(bool)
	if !ok {
		return defaultValue
	}
	return b
}

// GetInt retrieves an integer value, returning defaultValue if not found
// or wrong type. Supports both int and float64 (converting from JSON
// numbers)
func (a Args) GetInt(name string, defaultValue int) int {
	val, ok := a[name]
	if !ok {
		return defaultValue
	}
	if i, ok := val.(int); ok {
		return i
	}
	if f, ok := val.(float64); ok {
		return int(f)
	}
	return defaultValue
}

// GetFloat retrieves a float value, returning defaultValue if not found or
// wrong type
func (a Args) GetFloat(name string, defaultValue float64) float64 {
	val, ok := a[name]
	if !ok {
		return defaultValue
	}
	if f, ok := val.(float64); ok {
		return f
	}
	if i, ok := val.(int); ok {
		return float64(i)
	}
	return defaultValue
}
