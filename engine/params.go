package engine

import "fmt"

// Params carries the free-form configuration of a profile-declared
// condition or modifier. Values come straight from the decoded TOML, so
// numbers may arrive as int64 or float64.
type Params map[string]any

// Float reads a numeric parameter, falling back to def when absent.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return def
}

// Int reads an integer parameter, falling back to def when absent.
func (p Params) Int(key string, def int) int {
	return int(p.Float(key, float64(def)))
}

// Bool reads a boolean parameter, falling back to def when absent.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// String reads a string parameter, falling back to def when absent.
func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// RequireFloat reads a numeric parameter and errors when it is missing.
func (p Params) RequireFloat(key string) (float64, error) {
	if _, ok := p[key]; !ok {
		return 0, fmt.Errorf("engine: missing required parameter %q", key)
	}
	return p.Float(key, 0), nil
}
