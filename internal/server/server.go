// Package server exposes the assistant over a small JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/logger"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/service"
)

// Server handles the chat and export endpoints.
type Server struct {
	assistant *service.Assistant
}

// New creates a server around the assistant.
func New(assistant *service.Assistant) *Server {
	return &Server{assistant: assistant}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

type chatRequest struct {
	Question string `json:"question"`
}

type exportResponse struct {
	Question string          `json:"question"`
	Chunks   []exportedChunk `json:"chunks"`
}

type exportedChunk struct {
	Content    string          `json:"content"`
	Citation   domain.Citation `json:"citation"`
	Similarity float64         `json:"similarity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := s.assistant.AnswerQuestion(r.Context(), req.Question)
	if err != nil {
		s.respondWithFailure(w, err)
		return
	}
	respondWithJSON(w, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	matches, err := s.assistant.SelectExportChunks(r.Context(), req.Question)
	if err != nil {
		s.respondWithFailure(w, err)
		return
	}

	resp := exportResponse{Question: req.Question, Chunks: make([]exportedChunk, len(matches))}
	for i, m := range matches {
		resp.Chunks[i] = exportedChunk{
			Content:    m.Chunk.Content,
			Citation:   m.Chunk.Citation(),
			Similarity: m.Similarity,
		}
	}
	respondWithJSON(w, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	respondWithJSON(w, map[string]string{"status": "ok"})
}

// respondWithFailure maps the pipeline's error kinds onto status codes:
// bad input is the caller's fault, unreachable dependencies are ours.
func (s *Server) respondWithFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrModelsUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrIndexUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status >= 500 {
		logger.Warn("request failed: %v", err)
	}
	respondWithError(w, err.Error(), status)
}

func respondWithJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("encoding response failed: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
