package api

import (
	"net/http"
)

// Route paths. The v2 route is a deliberate duplicate of the plain GET
// route, kept as a distinct registration.
const (
	dataPath     = "/api/data"
	dataV2Path   = "/api/v2/data"
	dataIDPrefix = "/api/data/"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// GET, POST, OPTIONS on the exact path
	s.router.HandleFunc(dataPath, s.handleData)

	// GET variant on the v2 path
	s.router.HandleFunc(dataV2Path, s.handleDataV2)

	// PUT, PATCH, DELETE on /api/data/:id
	s.router.HandleFunc(dataIDPrefix, s.handleDataByID)
}

// handleData dispatches /api/data by method
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetData(w, r)
	case http.MethodPost:
		s.handleCreateData(w, r)
	case http.MethodOptions:
		s.handleOptions(w, r)
	default:
		MethodNotAllowed(w, r.Method)
	}
}

// handleDataV2 dispatches /api/v2/data by method
func (s *Server) handleDataV2(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetData(w, r)
	default:
		MethodNotAllowed(w, r.Method)
	}
}

// handleDataByID dispatches /api/data/{id} by method after validating
// the numeric ID segment. A non-numeric segment is not a route match.
func (s *Server) handleDataByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, dataIDPrefix)
	if !ok {
		NotFound(w, "expected a numeric ID after "+dataIDPrefix)
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		s.handleUpdateData(w, r, id)
	case http.MethodDelete:
		s.handleDeleteData(w, r, id)
	default:
		MethodNotAllowed(w, r.Method)
	}
}
