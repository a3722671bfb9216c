package api

import (
	"net/http"

	"jobboard-api/internal/analytics"
	"jobboard-api/internal/common/errors"
)

type AnalyticsHandler struct {
	reporter Reporter
	errs     *errors.ErrorHandler
}

// Report serves GET /api/analytics.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	req, err := analytics.ParseRequest(r.URL.Query())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	report, err := h.reporter.Report(r.Context(), req)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
