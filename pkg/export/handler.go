package export

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/69GliTcH/SimpliFin/internal/rest"
	"github.com/69GliTcH/SimpliFin/internal/utils"
	"github.com/69GliTcH/SimpliFin/pkg/spending"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	"github.com/69GliTcH/SimpliFin/pkg/view"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	viewService view.Service
	clock       utils.Clock
}

func NewHandler(viewService view.Service, clock utils.Clock) *Handler {
	return &Handler{viewService: viewService, clock: clock}
}

// ExportSpendings godoc
// @Summary Export spending records
// @Description Download the filtered spending records. The format follows the
// @Description Accept header: text/csv (default) or application/pdf.
// @Tags Spending
// @Produce text/csv
// @Produce application/pdf
// @Param fromDate query string false "Inclusive start date (RFC3339 or YYYY-MM-DD)"
// @Param toDate query string false "Inclusive end date (RFC3339 or YYYY-MM-DD)"
// @Param category query string false "Category name"
// @Success 200 {string} string "Exported records"
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/spending/export [get]
// @Security XUserId
func (h *Handler) ExportSpendings(w http.ResponseWriter, r *http.Request) {
	log.Trace("Exporting spending records")

	spec, err := view.ParseFilterSpec(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid filter",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	records, err := h.viewService.FilteredRecords(r.Context(), spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/pdf") {
		h.exportPDF(w, r, spec, records)
		return
	}
	h.exportCSV(w, records)
}

func (h *Handler) exportCSV(w http.ResponseWriter, records []spending.Record) {
	csv, err := RenderCSV(records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="spendings.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write CSV export: %v", err)
	}
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request, spec view.FilterSpec, records []spending.Record) {
	currency := ""
	if currentUser, err := user.CurrentUser(r.Context()); err == nil {
		currency = currentUser.Settings.Currency
	}

	pdf, err := RenderPDF(Report{
		Records:     records,
		DateRange:   dateRangeLabel(spec),
		Category:    spec.Category,
		Currency:    currency,
		GeneratedAt: h.clock.Now(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="spending-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Errorf("failed to write PDF export: %v", err)
	}
}

func dateRangeLabel(spec view.FilterSpec) string {
	const layout = "Jan 2, 2006"
	switch {
	case spec.From.IsZero() && spec.To.IsZero():
		return ""
	case spec.From.IsZero():
		return "Until " + spec.To.Format(layout)
	case spec.To.IsZero():
		return "From " + spec.From.Format(layout)
	default:
		return spec.From.Format(layout) + " to " + spec.To.Format(layout)
	}
}
