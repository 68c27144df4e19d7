// Package validate checks struct fields against rules in the `validate` tag.
//
// Rules are comma separated; parameters come after an equals sign:
//
//	type Input struct {
//	    Username string `json:"username" validate:"required,min=3,max=100"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Website  string `json:"website"  validate:"nullable,url"`
//	    Role     string `json:"role"     validate:"required,in=client,writer"`
//	}
//
// Available rules: required, nullable (empty skips the rest), email, url,
// numeric, integer, min=N, max=N (length for strings, value for numbers),
// in=a,b,c. Error keys follow the json tag name.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Struct runs every tagged rule on v (struct or pointer to struct). The
// result maps field name to the first failing rule's message; an empty map
// means the input passed.
func Struct(v interface{}) map[string]string {
	errs := map[string]string{}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := fieldName(rt.Field(i))
		value := rv.Field(i)
		rules := parseRules(tag)

		if containsRule(rules, "nullable") && isZero(value) {
			continue
		}
		for _, r := range rules {
			if r.name == "nullable" {
				continue
			}
			if msg := check(r, name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

// HasErrors reports whether Struct found anything.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

type rule struct {
	name  string
	param string
}

// parseRules splits the tag. The `in` rule's parameter list may itself
// contain commas, so everything after "in=" until the next known rule name
// belongs to it.
func parseRules(tag string) []rule {
	parts := strings.Split(tag, ",")
	var out []rule
	for i := 0; i < len(parts); i++ {
		name, param, _ := strings.Cut(parts[i], "=")
		if name == "in" {
			for i+1 < len(parts) && !isRuleName(parts[i+1]) {
				i++
				param += "," + parts[i]
			}
		}
		out = append(out, rule{name: name, param: param})
	}
	return out
}

func isRuleName(s string) bool {
	name, _, _ := strings.Cut(s, "=")
	switch name {
	case "required", "nullable", "email", "url", "numeric", "integer", "min", "max", "in":
		return true
	}
	return false
}

func containsRule(rules []rule, name string) bool {
	for _, r := range rules {
		if r.name == name {
			return true
		}
	}
	return false
}

func check(r rule, field string, v reflect.Value) string {
	str := fmt.Sprintf("%v", v.Interface())

	switch r.name {
	case "required":
		if isZero(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if _, err := mail.ParseAddress(str); err != nil || !strings.Contains(str, "@") {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}
	case "url":
		u, err := url.Parse(str)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Sprintf("The %s field must be a valid URL.", field)
		}
	case "numeric":
		if !isNumber(v) {
			if _, err := strconv.ParseFloat(str, 64); err != nil {
				return fmt.Sprintf("The %s field must be a number.", field)
			}
		}
	case "integer":
		if !isInt(v) {
			if _, err := strconv.ParseInt(str, 10, 64); err != nil {
				return fmt.Sprintf("The %s field must be an integer.", field)
			}
		}
	case "min":
		n, _ := strconv.ParseFloat(r.param, 64)
		if v.Kind() == reflect.String {
			if len([]rune(v.String())) < int(n) {
				return fmt.Sprintf("The %s field must be at least %s characters.", field, r.param)
			}
		} else if isNumber(v) && numValue(v) < n {
			return fmt.Sprintf("The %s field must be at least %s.", field, r.param)
		}
	case "max":
		n, _ := strconv.ParseFloat(r.param, 64)
		if v.Kind() == reflect.String {
			if len([]rune(v.String())) > int(n) {
				return fmt.Sprintf("The %s field may not be greater than %s characters.", field, r.param)
			}
		} else if isNumber(v) && numValue(v) > n {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, r.param)
		}
	case "in":
		for _, option := range strings.Split(r.param, ",") {
			if str == option {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s.", field, r.param)
	}
	return ""
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func numValue(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return 0
}
