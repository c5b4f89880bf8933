// Package demoserver implements a small in-memory game server exposing the
// registration endpoints, for demos and manual testing of the wizard
// without a real server.
package demoserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type preRegisterRequest struct {
	Name string `json:"name"`
}

// The field is spelled "registeration_token" on the wire. That matches the
// real server and the wizard client; do not fix it.
type preRegisterResponse struct {
	RegisterationToken string `json:"registeration_token"`
}

type registerRequest struct {
	RegisterationToken string `json:"registeration_token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server holds pending registration tokens. Tokens are single-use and live
// only as long as the process.
type Server struct {
	mu      sync.Mutex
	pending map[string]string // token -> name
}

// New creates a demo server.
func New() *Server {
	return &Server{
		pending: make(map[string]string),
	}
}

// Router returns the HTTP router for the registration endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/users/pre-register", s.handlePreRegister).Methods("POST")
	r.HandleFunc("/users/register", s.handleRegister).Methods("POST")
	return r
}

func (s *Server) handlePreRegister(w http.ResponseWriter, r *http.Request) {
	var req preRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	token, err := GenerateToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	s.mu.Lock()
	s.pending[token] = req.Name
	s.mu.Unlock()

	log.Debug().Str("name", req.Name).Msg("pre-registered")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preRegisterResponse{RegisterationToken: token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	name, ok := s.pending[req.RegisterationToken]
	if ok {
		delete(s.pending, req.RegisterationToken)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusBadRequest, "unknown registeration_token")
		return
	}

	log.Debug().Str("name", name).Msg("registered")

	// The register response is a raw string body, not JSON.
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "welcome aboard, %s", name)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
