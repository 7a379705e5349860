package api

import (
	"net/http"
)

// ServerName is the fixed identifier echoed in POST responses.
const ServerName = "MyServerName"

// Response messages, one per write path.
const (
	MsgFetched          = "Data Fetched"
	MsgReceived         = "Data Received"
	MsgUpdated          = "Data Updated"
	MsgPartiallyUpdated = "Data Partially Updated"
	MsgDeleted          = "Data Deleted"
)

// GetResponse echoes the request path and query parameters.
type GetResponse struct {
	Message     string            `json:"message"`
	Folder      string            `json:"folder"`
	Path        string            `json:"path"`
	QueryParams map[string]string `json:"query_params"`
}

// CreateResponse wraps a received body with the server identifier.
type CreateResponse struct {
	Message string      `json:"message"`
	Server  string      `json:"server"`
	Data    interface{} `json:"data"`
}

// UpdateResponse confirms a full or partial update.
type UpdateResponse struct {
	Message     string      `json:"message"`
	DataID      string      `json:"data_id"`
	UpdatedData interface{} `json:"updated_data"`
}

// DeleteResponse confirms a delete.
type DeleteResponse struct {
	Message string `json:"message"`
	DataID  string `json:"data_id"`
}

// handleGetData handles GET /api/data and GET /api/v2/data. It always
// succeeds; an absent folder parameter echoes as the empty string.
func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, GetResponse{
		Message:     MsgFetched,
		Folder:      r.URL.Query().Get("folder"),
		Path:        r.URL.Path,
		QueryParams: queryParams(r),
	}, http.StatusOK)
}

// handleCreateData handles POST /api/data
func (s *Server) handleCreateData(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSON(r)
	if err != nil {
		InvalidJSON(w, err)
		return
	}

	WriteJSON(w, CreateResponse{
		Message: MsgReceived,
		Server:  ServerName,
		Data:    body,
	}, http.StatusCreated)
}

// handleUpdateData handles PUT and PATCH on /api/data/{id}. The two
// verbs share a contract and differ only in the confirmation message.
func (s *Server) handleUpdateData(w http.ResponseWriter, r *http.Request, id string) {
	body, err := decodeJSON(r)
	if err != nil {
		InvalidJSON(w, err)
		return
	}

	message := MsgUpdated
	if r.Method == http.MethodPatch {
		message = MsgPartiallyUpdated
	}

	WriteJSON(w, UpdateResponse{
		Message:     message,
		DataID:      id,
		UpdatedData: body,
	}, http.StatusOK)
}

// handleDeleteData handles DELETE /api/data/{id}. No body parsing.
func (s *Server) handleDeleteData(w http.ResponseWriter, r *http.Request, id string) {
	WriteJSON(w, DeleteResponse{
		Message: MsgDeleted,
		DataID:  id,
	}, http.StatusOK)
}

// handleOptions handles OPTIONS /api/data: 204 with no body. The Allow
// header enumerates every supported verb; CORS headers are already set
// by the pre-routing interceptor.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", corsAllowMethods)
	w.WriteHeader(http.StatusNoContent)
}
