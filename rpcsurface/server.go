// Package rpcsurface implements the optional injection RPC surface of
// spec.md §6: an HTTP endpoint over the root Coordinator's Inject
// primitive. It plays the role the Python original's SimpleXMLRPCServer-
// based Coordinator.serve() plays, rebuilt with github.com/gorilla/mux
// and JSON rather than XML-RPC, matching the Go ecosystem's idiomatic
// HTTP routing choice.
package rpcsurface

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sarchlab/xdevs/engine"
	"github.com/sarchlab/xdevs/serialize"
)

// Server exposes root's injection primitive over HTTP.
type Server struct {
	root   *engine.Coordinator
	router *mux.Router
	logger *slog.Logger
}

// New builds a Server around root. Call Handler to obtain the
// http.Handler to serve, or ListenAndServe for a self-contained server.
func New(root *engine.Coordinator) *Server {
	s := &Server{root: root, logger: slog.Default()}
	s.router = mux.NewRouter()
	s.router.HandleFunc("/inject/{port}", s.handleInject).Methods(http.MethodPost)
	return s
}

// Handler returns the http.Handler backing this server, for embedding
// in a caller-owned http.Server or test harness.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs a dedicated HTTP server on addr until it errors.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// injectRequest is the JSON body of a POST /inject/{port} request.
type injectRequest struct {
	Values  []any   `json:"values"`
	Elapsed float64 `json:"elapsed"`
}

func (s *Server) handleInject(w http.ResponseWriter, r *http.Request) {
	port := mux.Vars(r)["port"]

	var req injectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	encoded, err := serialize.Encode(port, req.Values)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.root.InjectByAddress(port, encoded, req.Elapsed); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("rpcsurface: injection request failed", "status", status, "error", err)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
