package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindInvalidTransition, domain.KindDuplicate, domain.KindNotAccepting, domain.KindCapacityExceeded:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindProvisioning:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// writeError maps domain errors to status codes. Anything that is not a
// domain error is logged and hidden behind a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	status := statusFor(de.Kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	h.writeJSON(w, status, errorResponse{Error: de.Message, Code: string(de.Kind), Fields: de.Fields})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.ValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// maxPage bounds the page query parameter.
const maxPage = 1_000_000

func pageRequest(r *http.Request) (port.PageRequest, error) {
	var (
		q   = r.URL.Query()
		p   port.PageRequest
		err error
	)
	if s := q.Get("page"); s != "" {
		if p.Page, err = strconv.Atoi(s); err != nil || p.Page < 1 || p.Page > maxPage {
			return p, domain.ValidationError(fmt.Sprintf("page must be an integer between 1 and %d", maxPage), "page")
		}
	}
	if s := q.Get("limit"); s != "" {
		if p.Limit, err = strconv.Atoi(s); err != nil || p.Limit < 1 {
			return p, domain.ValidationError("limit must be a positive integer", "limit")
		}
	}
	return p, nil
}
