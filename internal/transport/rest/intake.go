package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/intakelog/internal/domain"
	"github.com/heartmarshall/intakelog/internal/service/intake"
)

const maxBodyBytes = 1 << 20

type intakeService interface {
	Add(ctx context.Context, input intake.AddInput) (*domain.IntakeRecord, error)
	History(ctx context.Context, input intake.HistoryInput) ([]domain.IntakeRecord, error)
	Clear(ctx context.Context) (int, error)
	TotalForDate(ctx context.Context, date string) (domain.DailyTotal, error)
	Unit() string
}

// IntakeHandler serves the /api/intake resource.
type IntakeHandler struct {
	svc intakeService
	log *slog.Logger
}

// NewIntakeHandler creates an IntakeHandler.
func NewIntakeHandler(svc intakeService, log *slog.Logger) *IntakeHandler {
	return &IntakeHandler{svc: svc, log: log.With("handler", "intake")}
}

// RecordJSON is the wire form of an intake record.
type RecordJSON struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Amount    float64 `json:"amount"`
	DrinkType *string `json:"drinkType"`
}

// HistoryResponse lists records in insertion order.
type HistoryResponse struct {
	Records []RecordJSON `json:"records"`
	Unit    string       `json:"unit"`
}

// AddResponse carries the stored record and the refreshed history.
type AddResponse struct {
	Record  RecordJSON   `json:"record"`
	Records []RecordJSON `json:"records"`
	Unit    string       `json:"unit"`
}

// ClearResponse reports how many records were removed.
type ClearResponse struct {
	Deleted int `json:"deleted"`
}

// TotalResponse is one day's sum.
type TotalResponse struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
	Unit   string  `json:"unit"`
}

// AddRequest is the body of POST /api/intake.
type AddRequest struct {
	Amount    Amount  `json:"amount"`
	DrinkType *string `json:"drinkType"`
}

// Amount accepts a JSON number or a numeric string, the way a form field
// submits it. Missing or null leaves Raw empty.
type Amount struct {
	Raw string
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		a.Raw = ""
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &a.Raw)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return domain.NewValidationError("amount", "must be a number")
		}
		a.Raw = n.String()
	}
	return nil
}

// List handles GET /api/intake[?date=YYYY-MM-DD].
func (h *IntakeHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.History(r.Context(), intake.HistoryInput{Date: r.URL.Query().Get("date")})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{Records: toRecordsJSON(records), Unit: h.svc.Unit()})
}

// Add handles POST /api/intake. On success it responds 201 with the new
// record and the refreshed full history. If only the refresh fails, records
// is empty.
func (h *IntakeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			err = domain.NewValidationError("body", "invalid JSON")
		}
		writeError(w, r, h.log, err)
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, h.log, domain.NewValidationError("body", "must contain a single JSON object"))
		return
	}

	amount, err := intake.ParseAmount(req.Amount.Raw)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.Add(r.Context(), intake.AddInput{Amount: amount, DrinkType: req.DrinkType})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	// The record is stored at this point; a failed refresh only empties records.
	records, err := h.svc.History(r.Context(), intake.HistoryInput{})
	if err != nil {
		logFailure(r, h.log, slog.LevelWarn, fmt.Errorf("refresh history after add: %w", err))
		records = nil
	}

	w.Header().Set("Location", "/api/intake?date="+rec.Date)
	writeJSON(w, http.StatusCreated, AddResponse{
		Record:  toRecordJSON(*rec),
		Records: toRecordsJSON(records),
		Unit:    h.svc.Unit(),
	})
}

// Clear handles DELETE /api/intake.
func (h *IntakeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Clear(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, ClearResponse{Deleted: deleted})
}

// Total handles GET /api/intake/total[?date=YYYY-MM-DD]; the default is today.
func (h *IntakeHandler) Total(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.TotalForDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, TotalResponse{
		Date:   total.Date,
		Amount: total.Amount,
		Count:  total.Count,
		Unit:   h.svc.Unit(),
	})
}

func toRecordJSON(rec domain.IntakeRecord) RecordJSON {
	return RecordJSON{
		ID:        rec.ID,
		Date:      rec.Date,
		Time:      rec.Time,
		Amount:    rec.Amount,
		DrinkType: rec.DrinkType,
	}
}

func toRecordsJSON(records []domain.IntakeRecord) []RecordJSON {
	out := make([]RecordJSON, len(records))
	for i, rec := range records {
		out[i] = toRecordJSON(rec)
	}
	return out
}
