package spending

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/69GliTcH/SimpliFin/internal/rest"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type SpendingDTO struct {
	Id        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	CreatedAt Timestamp `json:"createdAt"`
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
}

type snapshotDTO struct {
	Records []SpendingDTO `json:"records"`
}

type Handler struct {
	spendingService Service
	feed            *SnapshotFeed
}

func NewHandler(spendingService Service, feed *SnapshotFeed) *Handler {
	return &Handler{
		spendingService: spendingService,
		feed:            feed,
	}
}

// CreateSpending godoc
// @Summary Create a spending record
// @Description Store a new spending record for the current user
// @Tags Spending
// @Accept json
// @Produce json
// @Param spending body SpendingDTO true "Spending record"
// @Success 201 {object} SpendingDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/spending [post]
// @Security XUserId
func (h *Handler) CreateSpending(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating spending record")

	var spending SpendingDTO
	if err := json.NewDecoder(r.Body).Decode(&spending); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	log.Tracef("Creating spending record: %+v", spending)

	created, err := h.spendingService.CreateRecord(r.Context(), dtoToRecord(spending))
	if err != nil {
		if errors.Is(err, ErrRecordInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid spending record",
				Details: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(RecordToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteSpending godoc
// @Summary Delete a spending record
// @Description Delete one of the current user's spending records by id
// @Tags Spending
// @Param spendingId path string true "Spending record id"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse "Record not found"
// @Router /api/spending/{spendingId} [delete]
// @Security XUserId
func (h *Handler) DeleteSpending(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Deleting spending record")

	vars := mux.Vars(r)
	spendingId := vars["spendingId"]

	if err := h.spendingService.DeleteRecord(r.Context(), spendingId); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			w.WriteHeader(http.StatusNotFound)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Spending record not found",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StreamSpendings godoc
// @Summary Stream spending snapshots
// @Description Server-sent event stream delivering the full record list on
// @Description subscription and after every change. Slow consumers only
// @Description receive the latest snapshot.
// @Tags Spending
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /api/spending/stream [get]
// @Security XUserId
func (h *Handler) StreamSpendings(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	userId, err := user.CurrentId(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	snapshots, unsubscribe := h.feed.Subscribe(r.Context(), userId)
	defer unsubscribe()
	log.Debugf("started spending stream for user %d", userId)

	for {
		select {
		case <-r.Context().Done():
			log.Debugf("spending stream closed for user %d", userId)
			return
		case snapshot := <-snapshots:
			if snapshot.Err != nil {
				writeStreamError(w, flusher, snapshot.Err)
				if errors.Is(snapshot.Err, ErrPermissionDenied) {
					return
				}
				continue
			}
			payload, err := json.Marshal(snapshotToDTO(snapshot))
			if err != nil {
				log.Errorf("failed to encode snapshot for user %d: %v", userId, err)
				continue
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func writeStreamError(w http.ResponseWriter, flusher http.Flusher, err error) {
	reason := "snapshot unavailable"
	if errors.Is(err, ErrPermissionDenied) {
		reason = "permission denied"
	}
	payload, _ := json.Marshal(map[string]string{"error": reason})
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
	flusher.Flush()
}

func snapshotToDTO(snapshot Snapshot) snapshotDTO {
	records := make([]SpendingDTO, 0, len(snapshot.Records))
	for _, record := range snapshot.Records {
		records = append(records, RecordToDTO(record))
	}
	return snapshotDTO{Records: records}
}

// RecordToDTO converts a record to its wire shape, including the display
// style of its effective category.
func RecordToDTO(record Record) SpendingDTO {
	style := StyleOf(record.DisplayCategory())
	return SpendingDTO{
		Id:        record.ID,
		Name:      record.Name,
		Amount:    record.Amount,
		Category:  string(record.DisplayCategory()),
		CreatedAt: Timestamp{Time: record.CreatedAt},
		Color:     style.Color,
		Icon:      style.Icon,
	}
}

func dtoToRecord(dto SpendingDTO) Record {
	return Record{
		Name:      dto.Name,
		Amount:    dto.Amount,
		Category:  dto.Category,
		CreatedAt: dto.CreatedAt.Time,
	}
}
