package analytics

import (
	"encoding/json"
	"net/url"

	"jobboard-api/internal/common/validation"
)

// Request is a validated analytics request.
type Request struct {
	TimeRange TimeRange   `json:"timeRange"`
	GroupBy   Granularity `json:"groupBy"`
}

var requestParams = []validation.Param{
	{Name: "timeRange", Kind: validation.KindString},
	{Name: "groupBy", Kind: validation.KindString},
}

var requestSchema = func() *validation.Schema {
	raw, err := json.Marshal(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"timeRange": map[string]interface{}{"type": "string", "enum": TimeRanges},
			"groupBy":   map[string]interface{}{"type": "string", "enum": Granularities},
		},
	})
	if err != nil {
		panic(err)
	}
	return validation.MustCompile(string(raw))
}()

// ParseRequest validates timeRange and groupBy, defaulting to 30d and month.
func ParseRequest(values url.Values) (Request, error) {
	doc, result := validation.Coerce(values, requestParams)
	if err := result.Merge(requestSchema.Validate(doc)).Err("Invalid query"); err != nil {
		return Request{}, err
	}

	var req Request
	if err := validation.Decode(doc, &req); err != nil {
		return Request{}, err
	}
	if req.TimeRange == "" {
		req.TimeRange = Range30Days
	}
	if req.GroupBy == "" {
		req.GroupBy = ByMonth
	}
	return req, nil
}
