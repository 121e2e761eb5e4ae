package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"improver/internal/pipeline"
)

type improveRequest struct {
	Text string `json:"text" validate:"notblank"`
}

type improveResponse struct {
	ID string `json:"id"`
	pipeline.Result
}

type applyRequest struct {
	Text        string   `json:"text" validate:"notblank"`
	Suggestions []string `json:"suggestions" validate:"required"`
}

type applyResponse struct {
	Improved string `json:"improved"`
}

type wordRequest struct {
	Word string `json:"word" validate:"notblank,max=64"`
}

func (s *Server) improve(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if !s.decode(w, r, &req) {
		return
	}
	res := s.improver.Improve(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, improveResponse{ID: uuid.NewString(), Result: res})
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, applyResponse{Improved: s.improver.Apply(req.Text, req.Suggestions)})
}

func (s *Server) addWord(w http.ResponseWriter, r *http.Request) {
	if s.words == nil {
		writeError(w, http.StatusServiceUnavailable, "custom dictionary is not configured")
		return
	}
	var req wordRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.words.AddCustomWord(r.Context(), req.Word); err != nil {
		s.internalError(w, r, "add custom word", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

type wordsResponse struct {
	Words []string `json:"words"`
}

type lookupResponse struct {
	Word   string `json:"word"`
	Custom bool   `json:"custom"`
}

func (s *Server) listWords(w http.ResponseWriter, r *http.Request) {
	if s.words == nil {
		writeError(w, http.StatusServiceUnavailable, "custom dictionary is not configured")
		return
	}
	words, err := s.words.CustomWords(r.Context())
	if err != nil {
		s.internalError(w, r, "list custom words", err)
		return
	}
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, wordsResponse{Words: words})
}

func (s *Server) lookupWord(w http.ResponseWriter, r *http.Request) {
	if s.words == nil {
		writeError(w, http.StatusServiceUnavailable, "custom dictionary is not configured")
		return
	}
	word := strings.TrimSpace(chi.URLParam(r, "word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	found, err := s.words.IsCustomWord(r.Context(), word)
	if err != nil {
		s.internalError(w, r, "look up custom word", err)
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{Word: word, Custom: found})
}

func (s *Server) removeWord(w http.ResponseWriter, r *http.Request) {
	if s.words == nil {
		writeError(w, http.StatusServiceUnavailable, "custom dictionary is not configured")
		return
	}
	word := strings.TrimSpace(chi.URLParam(r, "word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.words.RemoveCustomWord(r.Context(), word); err != nil {
		s.internalError(w, r, "remove custom word", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body of at most maxBody bytes into dst and validates
// it. On failure the response is written and false returned.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(op+" failed",
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
