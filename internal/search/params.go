package search

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/url"

	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/validation"
)

// MaxResultWindow is the deepest from+size Elasticsearch serves with its
// default index.max_result_window.
const MaxResultWindow = 10000

// Limits bounds the page size accepted from clients.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

// Parser validates list query strings. Build one with NewParser and share it.
type Parser struct {
	limits     Limits
	offers     *validation.Schema
	jobseekers *validation.Schema
	paging     *validation.Schema
}

func NewParser(limits Limits) *Parser {
	if limits.MaxLimit <= 0 {
		limits.MaxLimit = 100
	}
	if limits.DefaultLimit <= 0 || limits.DefaultLimit > limits.MaxLimit {
		limits.DefaultLimit = min(20, limits.MaxLimit)
	}
	return &Parser{
		limits:     limits,
		offers:     mustSchema(offerSchema(limits)),
		jobseekers: mustSchema(jobseekerSchema(limits)),
		paging:     mustSchema(objectSchema(pagingProperties(limits))),
	}
}

var pagingParams = []validation.Param{
	{Name: "page", Kind: validation.KindInteger},
	{Name: "limit", Kind: validation.KindInteger},
}

type pageParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Page parses only page and limit, for the plain list endpoints.
func (p *Parser) Page(values url.Values) (Page, error) {
	var out pageParams
	if err := p.parse(values, pagingParams, p.paging, &out); err != nil {
		return Page{}, err
	}
	return p.page(out)
}

// page applies defaults and rejects pages that end past MaxResultWindow.
func (p *Parser) page(in pageParams) (Page, error) {
	page := Page{Number: in.Page, Limit: in.Limit}
	if page.Number == 0 {
		page.Number = 1
	}
	if page.Limit == 0 {
		page.Limit = p.limits.DefaultLimit
	}
	if last := MaxResultWindow / page.Limit; page.Number > last {
		return Page{}, errors.NewValidationFailedError("Invalid query", []errors.FieldError{{
			Field:   "page",
			Message: fmt.Sprintf("must be at most %d with limit %d", last, page.Limit),
			Code:    "out_of_range",
		}})
	}
	return page, nil
}

// parse coerces, validates and decodes. Coercion and schema errors are
// reported together so the client sees every bad field at once.
func (p *Parser) parse(values url.Values, params []validation.Param, schema *validation.Schema, out interface{}) error {
	doc, result := validation.Coerce(values, params)
	if !result.Valid {
		// Validate what did coerce so schema problems are listed too.
		result.Merge(schema.Validate(doc))
		return result.Err("Invalid query")
	}
	if err := schema.Validate(doc).Err("Invalid query"); err != nil {
		return err
	}
	if err := validation.Decode(doc, out); err != nil {
		return decodeError(err)
	}
	return nil
}

// decodeError reports a value the schema let through but the target type
// cannot hold as a failure of that field.
func decodeError(err error) error {
	field := ""
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		field = typeErr.Field
	}
	return errors.NewValidationFailedError("Invalid query", []errors.FieldError{{
		Field:   field,
		Message: "value out of range",
		Code:    "out_of_range",
	}})
}

func pagingProperties(limits Limits) map[string]interface{} {
	return map[string]interface{}{
		"page":  map[string]interface{}{"type": "integer", "minimum": 1, "maximum": MaxResultWindow},
		"limit": map[string]interface{}{"type": "integer", "minimum": 1, "maximum": limits.MaxLimit},
	}
}

func objectSchema(properties map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
}

func enumProperty(values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values}
}

func enumListProperty(values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": enumProperty(values...)}
}

func stringProperty(maxLength int) map[string]interface{} {
	return map[string]interface{}{"type": "string", "maxLength": maxLength}
}

func stringListProperty(maxItems, maxLength int) map[string]interface{} {
	return map[string]interface{}{"type": "array", "maxItems": maxItems, "items": stringProperty(maxLength)}
}

func dateProperty() map[string]interface{} {
	return map[string]interface{}{"type": "string", "format": "date-time"}
}

func mustSchema(schema map[string]interface{}) *validation.Schema {
	raw, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return validation.MustCompile(string(raw))
}
