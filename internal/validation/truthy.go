package validation

// Truthy decodes a checkbox value. The accepted literal set is exactly
// {true, false, "true", "false", "1", "0", 1, 0}; anything else is rejected.
func Truthy(value interface{}) (val bool, ok bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	case float64:
		// JSON numbers decode as float64.
		if v == 1 {
			return true, true
		}
		if v == 0 {
			return false, true
		}
	case int:
		if v == 1 {
			return true, true
		}
		if v == 0 {
			return false, true
		}
	}
	return false, false
}
