package toolbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Argument errors.
var (
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")
)

// String returns the required string argument key.
func String(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidArgument, key, v)
	}
	return s, nil
}

// OptionalString returns the string argument key, or "" when absent.
func OptionalString(args map[string]any, key string) (string, error) {
	if v, ok := args[key]; !ok || v == nil {
		return "", nil
	}
	return String(args, key)
}

// OptionalInt returns the integer argument key, or 0 when absent. JSON
// numbers decode as float64 and must hold a whole value.
func OptionalInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidArgument, key, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, key, err)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidArgument, key, v)
}
