package api

import (
	"net/http"
	"time"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
)

func profileSchema(extra map[string]interface{}) map[string]interface{} {
	str := func(n int) map[string]interface{} {
		return map[string]interface{}{"type": "string", "maxLength": n}
	}
	props := map[string]interface{}{
		"description": str(4000),
		"contacts": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]interface{}{
				"phone":    str(50),
				"telegram": str(100),
				"linkedin": str(2048),
				"github":   str(2048),
				"website":  str(2048),
			},
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"minProperties":        1,
		"properties":           props,
	}
}

func stringList(maxItems, maxLength int) map[string]interface{} {
	return map[string]interface{}{
		"type":     "array",
		"maxItems": maxItems,
		"items":    map[string]interface{}{"type": "string", "minLength": 1, "maxLength": maxLength},
	}
}

func enumList(values []string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"uniqueItems": true,
		"items":       map[string]interface{}{"type": "string", "enum": values},
	}
}

var jobseekerProfileSchema = mustBodySchema(profileSchema(map[string]interface{}{
	"stack":         stringList(50, 100),
	"portfolioUrls": stringList(10, 2048),
	"openToWork":    map[string]interface{}{"type": "boolean"},
	"preferences": map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"employmentTypes": enumList(models.PreferenceEmploymentTypes),
			"workModes":       enumList(models.PreferenceWorkModes),
		},
	},
	"studies": map[string]interface{}{
		"type":     "array",
		"maxItems": 20,
		"items": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]interface{}{
				"institution": map[string]interface{}{"type": "string", "maxLength": 200},
				"degree":      map[string]interface{}{"type": "string", "maxLength": 200},
				"field":       map[string]interface{}{"type": "string", "maxLength": 200},
				"startDate":   map[string]interface{}{"type": "string", "format": "date-time"},
				"endDate":     map[string]interface{}{"type": "string", "format": "date-time"},
			},
		},
	},
}))

var employerProfileSchema = mustBodySchema(profileSchema(map[string]interface{}{
	"companyName":        map[string]interface{}{"type": "string", "maxLength": 200},
	"companyWebsite":     map[string]interface{}{"type": "string", "maxLength": 2048},
	"companyDescription": map[string]interface{}{"type": "string", "maxLength": 4000},
}))

// Top-level user fields every role may edit. The rest of a body belongs to
// the role's nested profile.
var sharedProfileFields = map[string]bool{"description": true, "contacts": true}

type ProfileHandler struct {
	users  UserStore
	errs   *errors.ErrorHandler
	logger logger.Logger
	now    func() time.Time
}

// Me serves GET /api/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), auth.FromContext(r.Context()).UserID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update serves PATCH /api/me/profile. Objects in the body merge into the
// stored profile; arrays and scalars replace.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewer := auth.FromContext(r.Context())
	user, err := h.users.GetUser(r.Context(), viewer.UserID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	schema, nested := jobseekerProfileSchema, "jobseekerProfile"
	if user.Role == models.RoleEmployer {
		schema, nested = employerProfileSchema, "employerProfile"
	}
	doc, err := readJSON(r, schema, "Invalid profile")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	fields := map[string]interface{}{"updatedAt": h.now().UTC()}
	profile := map[string]interface{}{}
	for k, v := range doc {
		if sharedProfileFields[k] {
			fields[k] = v
		} else {
			profile[k] = v
		}
	}
	if len(profile) > 0 {
		fields[nested] = profile
	}

	updated, err := h.users.UpdateUser(r.Context(), user.ID, fields)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	h.logger.Info("profile updated", map[string]interface{}{"userId": user.ID})
	writeJSON(w, http.StatusOK, updated)
}
