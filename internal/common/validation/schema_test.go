package validation

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/common/errors"
)

const testSchema = `{
  "type": "object",
  "properties": {
    "limit": {"type": "integer", "minimum": 1, "maximum": 100},
    "sortDir": {"type": "string", "enum": ["asc", "desc"]},
    "skills": {"type": "array", "items": {"type": "string", "maxLength": 10}}
  }
}`

func TestCoerce(t *testing.T) {
	params := []Param{
		{Name: "q", Kind: KindString},
		{Name: "limit", Kind: KindInteger},
		{Name: "salaryMin", Kind: KindNumber},
		{Name: "isActive", Kind: KindBoolean},
		{Name: "skills", Kind: KindList},
		{Name: "postedAfter", Kind: KindDate},
	}

	tests := []struct {
		name       string
		query      string
		wantErrors []string
		validate   func(t *testing.T, doc map[string]interface{})
	}{
		{
			name:  "empty query yields empty document",
			query: "",
			validate: func(t *testing.T, doc map[string]interface{}) {
				assert.Empty(t, doc)
			},
		},
		{
			name:  "typed values",
			query: "q=go&limit=10&salaryMin=1500.5&isActive=false&skills=React,Node&skills=Go&postedAfter=2024-03-01",
			validate: func(t *testing.T, doc map[string]interface{}) {
				assert.Equal(t, "go", doc["q"])
				assert.Equal(t, float64(10), doc["limit"])
				assert.Equal(t, 1500.5, doc["salaryMin"])
				assert.Equal(t, false, doc["isActive"])
				assert.Equal(t, []interface{}{"React", "Node", "Go"}, doc["skills"])
				assert.Equal(t, "2024-03-01T00:00:00Z", doc["postedAfter"])
			},
		},
		{
			name:  "blank values are absent",
			query: "q=&limit=%20&skills=,",
			validate: func(t *testing.T, doc map[string]interface{}) {
				assert.Empty(t, doc)
			},
		},
		{
			name:  "unknown parameters are ignored",
			query: "foo=bar",
			validate: func(t *testing.T, doc map[string]interface{}) {
				assert.NotContains(t, doc, "foo")
			},
		},
		{
			name:       "bad values are reported per field",
			query:      "limit=ten&salaryMin=abc&isActive=maybe&postedAfter=yesterday",
			wantErrors: []string{"isActive", "limit", "postedAfter", "salaryMin"},
		},
		{
			name:       "fractional integer is rejected",
			query:      "limit=2.5",
			wantErrors: []string{"limit"},
		},
		{
			name:       "NaN is rejected",
			query:      "salaryMin=NaN",
			wantErrors: []string{"salaryMin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			doc, result := Coerce(values, params)
			if len(tt.wantErrors) > 0 {
				require.False(t, result.Valid)
				var fields []string
				for _, e := range result.Errors {
					fields = append(fields, e.Field)
				}
				assert.Equal(t, tt.wantErrors, fields)
				return
			}
			require.True(t, result.Valid, "%+v", result.Errors)
			tt.validate(t, doc)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-04-15T10:30:00+02:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 4, 15, 8, 30, 0, 0, time.UTC), got)

	got, ok = ParseDate("2024-04-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("15/04/2024")
	assert.False(t, ok)
}

func TestSchemaValidate(t *testing.T) {
	schema := MustCompile(testSchema)

	t.Run("valid document", func(t *testing.T) {
		result := schema.Validate(map[string]interface{}{"limit": float64(20), "sortDir": "asc"})
		assert.True(t, result.Valid)
		assert.NoError(t, result.Err(""))
	})

	t.Run("enum and bounds", func(t *testing.T) {
		result := schema.Validate(map[string]interface{}{"limit": float64(101), "sortDir": "sideways"})
		require.False(t, result.Valid)
		assert.True(t, hasField(result, "limit"))
		assert.True(t, hasField(result, "sortDir"))
		assert.Len(t, result.Errors, 2)

		err := result.Err("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeValidationFailed))
	})

	t.Run("array items", func(t *testing.T) {
		result := schema.Validate(map[string]interface{}{"skills": []interface{}{"go", "a-very-long-skill"}})
		require.False(t, result.Valid)
		assert.True(t, hasField(result, "skills.1"))
	})

	t.Run("raw json body", func(t *testing.T) {
		assert.True(t, schema.ValidateJSON([]byte(`{"limit": 5}`)).Valid)
		bad := schema.ValidateJSON([]byte(`{"limit":`))
		require.False(t, bad.Valid)
		assert.Equal(t, "invalid_json", bad.Errors[0].Code)
	})
}

func TestDecode(t *testing.T) {
	var out struct {
		Limit  int       `json:"limit"`
		After  time.Time `json:"postedAfter"`
		Skills []string  `json:"skills"`
	}
	doc := map[string]interface{}{
		"limit":       float64(10),
		"postedAfter": "2024-03-01T00:00:00Z",
		"skills":      []interface{}{"Go"},
	}
	require.NoError(t, Decode(doc, &out))
	assert.Equal(t, 10, out.Limit)
	assert.Equal(t, 2024, out.After.Year())
	assert.Equal(t, []string{"Go"}, out.Skills)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
}

func hasField(result *ValidationResult, field string) bool {
	for _, e := range result.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}
