package types

import (
	"strconv"
	"strings"
)

// AnswerMap collects the answers of one response session, keyed by question
// id. Values keep the type-dependent shape the client submitted: scalar
// string/number/bool, []string for multi-selects and rankings, and
// map[string]string for address and matrix answers. The flow engine only
// reads it; the session runner appends to it.
type AnswerMap map[string]interface{}

// AnswerAsString normalizes a scalar answer to its string form. Numbers are
// formatted without trailing zeros, booleans as "true"/"false".
func AnswerAsString(answer interface{}) (string, bool) {
	switch v := answer.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// AnswerAsFloat coerces a scalar answer to a number. Numeric strings parse,
// booleans and other shapes do not.
func AnswerAsFloat(answer interface{}) (float64, bool) {
	switch v := answer.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AnswerAsStringSlice normalizes an array-valued answer (checkbox selections,
// ranking order) to a string slice. Elements that are not scalar are dropped.
func AnswerAsStringSlice(answer interface{}) ([]string, bool) {
	switch v := answer.(type) {
	case []string:
		return v, true
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := AnswerAsString(item); ok {
				items = append(items, s)
			}
		}
		return items, true
	}
	return nil, false
}

// AnswerAsStringMap normalizes a record-shaped answer (address fields, matrix
// cell selections) to a string map.
func AnswerAsStringMap(answer interface{}) (map[string]string, bool) {
	switch v := answer.(type) {
	case map[string]string:
		return v, true
	case map[string]interface{}:
		items := make(map[string]string, len(v))
		for key, item := range v {
			if s, ok := AnswerAsString(item); ok {
				items[key] = s
			}
		}
		return items, true
	}
	return nil, false
}

// IsAnswerEmpty reports whether an answer counts as "not given": missing,
// empty string, empty array or empty record. Zero numbers and false booleans
// are valid answers.
func IsAnswerEmpty(answer interface{}) bool {
	if answer == nil {
		return true
	}
	if s, ok := answer.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	if items, ok := AnswerAsStringSlice(answer); ok {
		return len(items) == 0
	}
	if record, ok := AnswerAsStringMap(answer); ok {
		return len(record) == 0
	}
	return false
}
