package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/abdulachik/quotator/internal/cache"
	"github.com/abdulachik/quotator/internal/quote"
	"github.com/abdulachik/quotator/internal/quotator"
)

type pageData struct {
	Ready             bool
	Status            string
	Sources           []string
	Amounts           []int
	Amount            int
	Source            string
	Reverse           bool
	Shuffle           bool
	AutoUpdate        bool
	AutoUpdateSeconds int
	SelfURL           string
	Quotes            []*quote.Quote
	Error             string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := s.cache.Status()

	data := pageData{
		Ready:             st.Ready(),
		Status:            st.String(),
		Sources:           s.cache.Sources(),
		Amounts:           s.amounts(),
		Amount:            s.clampAmount(q.Get("amount")),
		Source:            q.Get("source"),
		Reverse:           checked(q, "reverse"),
		Shuffle:           checked(q, "shuffle"),
		AutoUpdate:        checked(q, "auto"),
		AutoUpdateSeconds: int(s.autoUpdate.Seconds()),
		SelfURL:           r.URL.RequestURI(),
	}
	if data.Source == "" {
		data.Source = s.defaultSource
	}

	code := http.StatusOK
	if data.Ready && (q.Get("generate") != "" || data.AutoUpdate) {
		quotes, err := s.quotator.GetQuotes(data.Amount, data.Source, data.Reverse, data.Shuffle)
		if err != nil {
			code = statusForError(err)
			data.Error = err.Error()
		}
		data.Quotes = quotes
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Error("render page", "error", err)
	}
}

type quotesResponse struct {
	Status string         `json:"status"`
	Quotes []*quote.Quote `json:"quotes"`
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	st := s.cache.Status()
	if !st.Ready() {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("quotes are %s", st))
		return
	}

	q := r.URL.Query()
	req := quotator.Request{
		Amount:  1,
		Source:  q.Get("source"),
		Reverse: checked(q, "reverse"),
		Shuffle: checked(q, "shuffle"),
	}
	if req.Source == "" {
		req.Source = s.defaultSource
	}

	if raw := q.Get("amount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > s.maxAmount {
			writeError(w, http.StatusBadRequest, fmt.Errorf("amount must be a number from 0 to %d", s.maxAmount))
			return
		}
		req.Amount = n
	}

	quotes, err := s.quotator.Generate(req)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, quotesResponse{Status: st.String(), Quotes: quotes})
}

type statusResponse struct {
	Status  string         `json:"status"`
	Ready   bool           `json:"ready"`
	Sources []string       `json:"sources"`
	Counts  map[string]int `json:"counts"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.cache.Status()
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  st.String(),
		Ready:   st.Ready(),
		Sources: s.cache.Sources(),
		Counts:  s.cache.Counts(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	if !s.cache.Status().Ready() {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":     s.cache.Status().String(),
		"healthy":    s.health.IsOverallHealthy(),
		"components": s.health.GetAllStatuses(),
	})
}

// amounts lists the choices offered in the page's amount select.
func (s *Server) amounts() []int {
	out := make([]int, s.maxAmount)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// clampAmount parses the page's amount field into [1, maxAmount].
func (s *Server) clampAmount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return min(n, s.maxAmount)
}

func checked(q url.Values, key string) bool {
	switch q.Get(key) {
	case "", "0", "false", "off":
		return false
	default:
		return true
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, cache.ErrUnknownSource):
		return http.StatusBadRequest
	case errors.Is(err, cache.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
