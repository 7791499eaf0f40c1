package mcp

import (
	"fmt"
	"math"
	"strings"
)

// parseStringArg extracts a string argument from an MCP arguments map.
// Returns an error if the argument is required but missing or invalid.
func parseStringArg(argsMap map[string]interface{}, key string, required bool) (string, error) {
	val, ok := argsMap[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%s parameter is required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// parseIntArg extracts an integer argument. MCP sends numbers as float64;
// values outside the int range saturate and NaN yields defaultVal.
func parseIntArg(argsMap map[string]interface{}, key string, defaultVal int) int {
	switch v := argsMap[key].(type) {
	case float64:
		switch {
		case math.IsNaN(v):
			return defaultVal
		case v >= float64(math.MaxInt):
			return math.MaxInt
		case v <= float64(math.MinInt):
			return math.MinInt
		}
		return int(v)
	case int:
		return v
	default:
		return defaultVal
	}
}

// parseBoolArg extracts a boolean argument, falling back to defaultVal.
func parseBoolArg(argsMap map[string]interface{}, key string, defaultVal bool) bool {
	if b, ok := argsMap[key].(bool); ok {
		return b
	}
	return defaultVal
}

// parseListArg extracts a list of strings. Both JSON arrays and
// comma-separated strings are accepted; blank entries are dropped.
// Returns nil when the argument is missing.
func parseListArg(argsMap map[string]interface{}, key string) []string {
	var raw []string
	switch v := argsMap[key].(type) {
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok {
				raw = append(raw, str)
			}
		}
	case []string:
		raw = v
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil
	}

	result := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// parseClampedInt extracts an integer argument and clamps it to [min, max].
func parseClampedInt(argsMap map[string]interface{}, key string, defaultVal, min, max int) int {
	val := parseIntArg(argsMap, key, defaultVal)
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
