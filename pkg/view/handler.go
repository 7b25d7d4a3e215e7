package view

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/69GliTcH/SimpliFin/internal/rest"
	"github.com/69GliTcH/SimpliFin/pkg/spending"
	log "github.com/sirupsen/logrus"
)

type PageDTO struct {
	Items      []spending.SpendingDTO `json:"items"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
	TotalCount int                    `json:"totalCount"`
}

type SliceDTO struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Color    string  `json:"color"`
}

type LegendEntryDTO struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

type DistributionDTO struct {
	Slices []SliceDTO       `json:"slices"`
	Legend []LegendEntryDTO `json:"legend"`
}

type PointDTO struct {
	Label    string  `json:"label"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
	Category string  `json:"category"`
}

type PartitionDTO struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type SummaryDTO struct {
	Today     PartitionDTO `json:"today"`
	ThisWeek  PartitionDTO `json:"thisWeek"`
	ThisMonth PartitionDTO `json:"thisMonth"`
	Filtered  PartitionDTO `json:"filtered"`
}

type Handler struct {
	viewService Service
}

func NewHandler(viewService Service) *Handler {
	return &Handler{viewService: viewService}
}

// GetSpendings godoc
// @Summary List spending records
// @Description Retrieve one page of the current user's spending records,
// @Description newest first, optionally narrowed by date range and category
// @Tags Spending
// @Produce json
// @Param fromDate query string false "Inclusive start date (RFC3339 or YYYY-MM-DD)"
// @Param toDate query string false "Inclusive end date (RFC3339 or YYYY-MM-DD)"
// @Param category query string false "Category name"
// @Param page query int false "Page number, starting at 1"
// @Param pageSize query int false "Page size (default 10)"
// @Success 200 {object} PageDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/spending [get]
// @Security XUserId
func (h *Handler) GetSpendings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Listing spending records")

	spec, err := ParseFilterSpec(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}
	page, pageSize, err := parsePaging(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}

	result, err := h.viewService.TablePage(r.Context(), spec, page, pageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(pageToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetDistribution godoc
// @Summary Get spending distribution
// @Description Per-category spending totals for a pie chart, plus the full
// @Description category legend
// @Tags Analytics
// @Produce json
// @Param fromDate query string false "Inclusive start date (RFC3339 or YYYY-MM-DD)"
// @Param toDate query string false "Inclusive end date (RFC3339 or YYYY-MM-DD)"
// @Param category query string false "Category name"
// @Success 200 {object} DistributionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/analytics/distribution [get]
// @Security XUserId
func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Computing spending distribution")

	spec, err := ParseFilterSpec(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}

	slices, err := h.viewService.Distribution(r.Context(), spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := DistributionDTO{
		Slices: make([]SliceDTO, 0, len(slices)),
		Legend: make([]LegendEntryDTO, 0),
	}
	for _, slice := range slices {
		dto.Slices = append(dto.Slices, SliceDTO{
			Category: string(slice.Category),
			Total:    slice.Total,
			Color:    slice.Color,
		})
	}
	for _, entry := range Legend() {
		dto.Legend = append(dto.Legend, LegendEntryDTO{
			Category: string(entry.Category),
			Color:    entry.Color,
			Icon:     entry.Icon,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetTimeline godoc
// @Summary Get spending timeline
// @Description Spending over time for a line chart. Small result sets come
// @Description back one point per record; larger ones are bucketed by day,
// @Description month, or year depending on the covered span.
// @Tags Analytics
// @Produce json
// @Param fromDate query string false "Inclusive start date (RFC3339 or YYYY-MM-DD)"
// @Param toDate query string false "Inclusive end date (RFC3339 or YYYY-MM-DD)"
// @Param category query string false "Category name"
// @Success 200 {array} PointDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/analytics/timeline [get]
// @Security XUserId
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Computing spending timeline")

	spec, err := ParseFilterSpec(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}

	points, err := h.viewService.Timeline(r.Context(), spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PointDTO, 0, len(points))
	for _, point := range points {
		dtos = append(dtos, PointDTO{
			Label:    point.Label,
			Date:     point.Date.Format(time.RFC3339),
			Amount:   point.Amount,
			Count:    point.Count,
			Category: point.Category,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetSummary godoc
// @Summary Get dashboard summary
// @Description Aggregated spending for today, the current week, the current
// @Description month, and the filtered record set
// @Tags Dashboard
// @Produce json
// @Param fromDate query string false "Inclusive start date (RFC3339 or YYYY-MM-DD)"
// @Param toDate query string false "Inclusive end date (RFC3339 or YYYY-MM-DD)"
// @Param category query string false "Category name"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/dashboard/summary [get]
// @Security XUserId
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Computing dashboard summary")

	spec, err := ParseFilterSpec(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}

	summary, err := h.viewService.Summary(r.Context(), spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ParseFilterSpec reads the shared filter query parameters. Date-only values
// for toDate extend to the end of that day so the bound stays inclusive.
func ParseFilterSpec(r *http.Request) (FilterSpec, error) {
	var spec FilterSpec
	query := r.URL.Query()

	if raw := query.Get("fromDate"); raw != "" {
		from, _, err := parseQueryDate(raw)
		if err != nil {
			return FilterSpec{}, fmt.Errorf("invalid fromDate %q", raw)
		}
		spec.From = from
	}
	if raw := query.Get("toDate"); raw != "" {
		to, dateOnly, err := parseQueryDate(raw)
		if err != nil {
			return FilterSpec{}, fmt.Errorf("invalid toDate %q", raw)
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		spec.To = to
	}
	spec.Category = query.Get("category")
	return spec, nil
}

func parseQueryDate(raw string) (parsed time.Time, dateOnly bool, err error) {
	if parsed, err = time.Parse(time.RFC3339, raw); err == nil {
		return parsed, false, nil
	}
	if parsed, err = time.Parse("2006-01-02", raw); err == nil {
		return parsed, true, nil
	}
	return time.Time{}, false, err
}

func parsePaging(r *http.Request) (page, pageSize int, err error) {
	page = 1
	pageSize = DefaultPageSize
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page %q", raw)
		}
	}
	if raw := query.Get("pageSize"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			return 0, 0, fmt.Errorf("invalid pageSize %q", raw)
		}
	}
	return page, pageSize, nil
}

func writeFilterError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid filter",
		Details: err.Error(),
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func pageToDTO(page Page) PageDTO {
	items := make([]spending.SpendingDTO, 0, len(page.Items))
	for _, record := range page.Items {
		items = append(items, spending.RecordToDTO(record))
	}
	return PageDTO{
		Items:      items,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
	}
}

func summaryToDTO(summary Summary) SummaryDTO {
	return SummaryDTO{
		Today:     partitionToDTO(summary.Today),
		ThisWeek:  partitionToDTO(summary.ThisWeek),
		ThisMonth: partitionToDTO(summary.ThisMonth),
		Filtered:  partitionToDTO(summary.Filtered),
	}
}

func partitionToDTO(stats PartitionStats) PartitionDTO {
	return PartitionDTO{
		Total:   stats.Total,
		Count:   stats.Count,
		Average: stats.Average,
	}
}
