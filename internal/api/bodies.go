package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/validation"
	"jobboard-api/internal/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func offerProperties() map[string]interface{} {
	str := func(n int) map[string]interface{} {
		return map[string]interface{}{"type": "string", "maxLength": n}
	}
	url := map[string]interface{}{"type": "string", "maxLength": 2048}
	date := map[string]interface{}{"type": "string", "format": "date-time"}
	amount := map[string]interface{}{"type": "number", "minimum": 0}
	list := map[string]interface{}{
		"type":     "array",
		"maxItems": 50,
		"items":    map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 100},
	}

	return map[string]interface{}{
		"title":           map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 200},
		"descriptionText": str(20000),
		"descriptionHtml": str(50000),
		"companyName":     str(200),
		"companyWebsite":  url,
		"companyIndustry": str(200),
		"companyLogo":     url,
		"applyUrl":        url,
		"sourceUrl":       url,
		"workMode":        map[string]interface{}{"type": "string", "enum": models.WorkModes},
		"employmentType":  map[string]interface{}{"type": "string", "enum": models.EmploymentTypes},
		"postedAt":        date,
		"validThrough":    date,
		"skills":          list,
		"tags":            list,
		"isActive":        map[string]interface{}{"type": "boolean"},
		"location": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]interface{}{
				"city":      str(100),
				"region":    str(100),
				"country":   str(100),
				"formatted": str(300),
				"timezone":  str(64),
				"lat":       map[string]interface{}{"type": "number", "minimum": -90, "maximum": 90},
				"lng":       map[string]interface{}{"type": "number", "minimum": -180, "maximum": 180},
			},
		},
		"salary": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]interface{}{
				"currency": str(10),
				"min":      amount,
				"max":      amount,
				"unit":     str(20),
				"rawText":  str(200),
			},
		},
	}
}

func mustBodySchema(schema map[string]interface{}) *validation.Schema {
	raw, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return validation.MustCompile(string(raw))
}

var (
	createOfferSchema = mustBodySchema(map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"title"},
		"properties":           offerProperties(),
	})
	updateOfferSchema = mustBodySchema(map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"minProperties":        1,
		"properties":           offerProperties(),
	})
)

// bodyCheck validates what a JSON schema cannot express.
type bodyCheck func(doc map[string]interface{}) *validation.ValidationResult

// readJSON reads and validates a request body against schema and checks,
// returning the decoded document. message heads the validation error.
func readJSON(r *http.Request, schema *validation.Schema, message string, checks ...bodyCheck) (map[string]interface{}, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.NewInvalidRequestBodyError(err)
	}
	if len(raw) > maxBodyBytes {
		return nil, errors.NewInvalidRequestBodyError(fmt.Errorf("body exceeds %d bytes", maxBodyBytes))
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewInvalidRequestBodyError(err)
	}
	result := schema.Validate(doc)
	for _, check := range checks {
		result.Merge(check(doc))
	}
	if err := result.Err(message); err != nil {
		return nil, err
	}
	return doc, nil
}

// salaryOrder rejects a body whose salary minimum exceeds its maximum.
func salaryOrder(doc map[string]interface{}) *validation.ValidationResult {
	result := &validation.ValidationResult{Valid: true}
	salary, ok := doc["salary"].(map[string]interface{})
	if !ok {
		return result
	}
	lo, okMin := salary["min"].(float64)
	hi, okMax := salary["max"].(float64)
	if okMin && okMax && lo > hi {
		result.Valid = false
		result.Errors = []errors.FieldError{{
			Field:   "salary.max",
			Message: "must be greater than or equal to salary.min",
			Code:    "range",
		}}
	}
	return result
}

// newOffer builds an employer created offer from a validated body.
func newOffer(doc map[string]interface{}, createdBy string, now time.Time) (*models.Offer, error) {
	var offer models.Offer
	if err := validation.Decode(doc, &offer); err != nil {
		return nil, errors.NewInvalidRequestBodyError(err)
	}

	offer.ID = uuid.NewString()
	offer.Source = models.SourceInternal
	offer.CreatedBy = createdBy
	if _, set := doc["isActive"]; !set {
		offer.IsActive = true
	}
	if offer.WorkMode == "" {
		offer.WorkMode = models.WorkModeUnspecified
	}
	if offer.EmploymentType == "" {
		offer.EmploymentType = models.EmploymentUnspecified
	}
	if offer.PostedAt == nil {
		offer.PostedAt = &now
	}
	offer.ScrapedAt = &now
	offer.LastSeenAt = &now
	offer.CreatedAt = now
	offer.UpdatedAt = now
	offer.IsSaved = nil
	return &offer, nil
}
