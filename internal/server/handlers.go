package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ppiankov/satya/internal/model"
)

const maxRequestBytes = 1 << 20

// VerifyRequest carries exactly one of Text or URL
type VerifyRequest struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// VerifyResponse is returned for a successful verification
type VerifyResponse struct {
	ID         string                  `json:"id"`
	RequestID  string                  `json:"request_id,omitempty"`
	Verdict    *model.Verdict          `json:"verdict"`
	Content    *model.ExtractedContent `json:"content"`
	Disclaimer string                  `json:"disclaimer"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]model.TrustedSource{"sources": s.verifier.Registry().All()})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON with a text or url field")
		return
	}

	text, address := strings.TrimSpace(req.Text), strings.TrimSpace(req.URL)
	var input model.ContentInput
	switch {
	case text != "" && address != "":
		respondError(w, http.StatusBadRequest, "invalid_request", "send either text or url, not both")
		return
	case text != "":
		input = model.TextInput(req.Text)
	case address != "":
		input = model.URLInput(address)
	default:
		respondError(w, http.StatusBadRequest, "invalid_request", "text or url is required")
		return
	}

	result, err := s.verifier.Run(r.Context(), input)
	if err != nil {
		var vErr *model.VerificationError
		if !errors.As(err, &vErr) {
			respondError(w, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		respondError(w, StatusFor(vErr.Kind), string(vErr.Kind), vErr.Reason)
		return
	}

	respondJSON(w, http.StatusOK, VerifyResponse{
		ID:         uuid.NewString(),
		RequestID:  middleware.GetReqID(r.Context()),
		Verdict:    result.Verdict,
		Content:    result.Content,
		Disclaimer: model.Disclaimer,
	})
}

// StatusFor maps a failure kind to its HTTP status
func StatusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindExtractionFailed:
		return http.StatusUnprocessableEntity
	case model.KindEngineTimeout:
		return http.StatusGatewayTimeout
	case model.KindEngineUnavailable, model.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
