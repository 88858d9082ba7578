// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Form struct {
//	    FullName string `json:"fullName" validate:"required,max=255"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Status   string `json:"status"   validate:"required,in=pending,confirmed,cancelled"`
//	}
package validate

import (
	"fmt"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if _, err := mail.ParseAddress(raw); err != nil {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "min":
		if msg := checkBound(field, v, param, true); msg != "" {
			return msg
		}

	case "max":
		if msg := checkBound(field, v, param, false); msg != "" {
			return msg
		}

	case "in":
		// The in= rule ends the tag; param may itself contain commas.
		for _, option := range strings.Split(param, ",") {
			if raw == option {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s.", field, param)
	}

	return ""
}

func checkBound(field string, v reflect.Value, param string, isMin bool) string {
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}

	var actual float64
	unit := "characters"
	switch v.Kind() {
	case reflect.String:
		actual = float64(len(v.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		actual = float64(v.Int())
		unit = ""
	case reflect.Float32, reflect.Float64:
		actual = v.Float()
		unit = ""
	default:
		return ""
	}

	if isMin && actual < bound {
		if unit == "" {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}
		return fmt.Sprintf("The %s field must be at least %s %s.", field, param, unit)
	}
	if !isMin && actual > bound {
		if unit == "" {
			return fmt.Sprintf("The %s field must not be greater than %s.", field, param)
		}
		return fmt.Sprintf("The %s field must not be greater than %s %s.", field, param, unit)
	}
	return ""
}

// splitRules splits a tag on commas, except that an in= rule consumes the
// remainder of the tag (its options are themselves comma-separated), so it
// must be the last rule in the tag.
func splitRules(tag string) []string {
	parts := strings.Split(tag, ",")
	rules := make([]string, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		if strings.HasPrefix(parts[i], "in=") {
			rules = append(rules, strings.Join(parts[i:], ","))
			break
		}
		rules = append(rules, parts[i])
	}
	return rules
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
