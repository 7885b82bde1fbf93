// Parameter extraction and range validation helpers
package effects

import "fmt"

func floatParam(name string, value interface{}, min, max float64) (float64, error) {
	var v float64
	switch t := value.(type) {
	case float64:
		v = t
	case int:
		v = float64(t)
	default:
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be between %g and %g", name, min, max)
	}
	return v, nil
}

func intParam(name string, value interface{}, min, max int) (int, error) {
	v, err := floatParam(name, value, float64(min), float64(max))
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func boolParam(name string, value interface{}) (bool, error) {
	v, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a bool", name)
	}
	return v, nil
}
