package validation

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobboard-api/internal/common/errors"
)

// Kind is the type a query parameter is coerced to before schema validation.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindList
	KindDate
)

// Param declares one accepted query parameter.
type Param struct {
	Name string
	Kind Kind
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Coerce turns raw query values into a JSON-compatible document. Blank values
// count as absent. Lists accept both repeated keys and comma separated values.
// Parameters that are not declared are ignored.
func Coerce(values url.Values, params []Param) (map[string]interface{}, *ValidationResult) {
	doc := make(map[string]interface{}, len(params))
	result := &ValidationResult{Valid: true}

	for _, p := range params {
		raw, present := values[p.Name]
		if !present {
			continue
		}
		if p.Kind == KindList {
			if list := splitList(raw); len(list) > 0 {
				doc[p.Name] = list
			}
			continue
		}

		value := strings.TrimSpace(lastValue(raw))
		if value == "" {
			continue
		}

		converted, fieldErr := convert(p, value)
		if fieldErr != nil {
			result.Errors = append(result.Errors, *fieldErr)
			continue
		}
		doc[p.Name] = converted
	}

	sortFieldErrors(result.Errors)
	result.Valid = len(result.Errors) == 0
	return doc, result
}

func convert(p Param, value string) (interface{}, *errors.FieldError) {
	switch p.Kind {
	case KindNumber:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &errors.FieldError{Field: p.Name, Message: "must be a number", Code: "invalid_type"}
		}
		return f, nil
	case KindInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, &errors.FieldError{Field: p.Name, Message: "must be an integer", Code: "invalid_type"}
		}
		return float64(n), nil
	case KindBoolean:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, &errors.FieldError{Field: p.Name, Message: "must be true or false", Code: "invalid_type"}
		}
		return b, nil
	case KindDate:
		t, ok := ParseDate(value)
		if !ok {
			return nil, &errors.FieldError{Field: p.Name, Message: "must be an ISO-8601 date", Code: "invalid_date"}
		}
		return t.Format(time.RFC3339Nano), nil
	default:
		return value, nil
	}
}

// ParseDate accepts RFC 3339 timestamps and bare dates. Values without a zone are UTC.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func lastValue(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return raw[len(raw)-1]
}

func splitList(raw []string) []interface{} {
	var out []interface{}
	for _, chunk := range raw {
		for _, item := range strings.Split(chunk, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
