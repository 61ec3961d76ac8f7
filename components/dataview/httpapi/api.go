package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dataview/components/dataview"
	"github.com/goliatone/go-dataview/components/dataview/commands"
	"github.com/goliatone/go-dataview/components/dataview/queries"
)

// Handlers exposes net/http endpoints backed by shared commands. Handlers that
// act on a session take the session id resolved by the caller's router.
type Handlers struct {
	Filter gocommand.Commander[commands.SetStatusFilterInput]
	Search gocommand.Commander[commands.SetSearchQueryInput]
	Page   gocommand.Commander[commands.SetPageInput]
	Remove gocommand.Commander[commands.RemoveRowInput]
	Add    gocommand.Commander[commands.AddRowInput]
	Reload gocommand.Commander[commands.ReloadInput]
	Close  gocommand.Commander[commands.CloseSessionInput]
	View   gocommand.Querier[queries.ViewInput, dataview.ViewPayload]
}

func (h *Handlers) HandleSetStatusFilter(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.SetStatusFilterInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.SessionID = sessionID
	h.respond(w, r, sessionID, h.Filter.Execute(r.Context(), payload))
}

func (h *Handlers) HandleSetSearchQuery(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.SetSearchQueryInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.SessionID = sessionID
	h.respond(w, r, sessionID, h.Search.Execute(r.Context(), payload))
}

func (h *Handlers) HandleSetPage(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.SetPageInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.SessionID = sessionID
	h.respond(w, r, sessionID, h.Page.Execute(r.Context(), payload))
}

func (h *Handlers) HandleAddRow(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.AddRowInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.SessionID = sessionID
	if err := h.Add.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveRow(w http.ResponseWriter, r *http.Request, sessionID, rowKey string) {
	input := commands.RemoveRowInput{SessionID: sessionID, RowKey: rowKey}
	if err := h.Remove.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request, sessionID string) {
	input := commands.ReloadInput{SessionID: sessionID}
	h.respond(w, r, sessionID, h.Reload.Execute(r.Context(), input))
}

func (h *Handlers) HandleCloseSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.Close.Execute(r.Context(), commands.CloseSessionInput{SessionID: sessionID}); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request, sessionID string) {
	h.respond(w, r, sessionID, nil)
}

// respond writes the fresh projection after a successful command so clients
// never need a second round trip.
func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, sessionID string, err error) {
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	if h.View == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	payload, err := h.View.Query(r.Context(), queries.ViewInput{SessionID: sessionID})
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, dataview.ErrSessionNotFound), errors.Is(err, dataview.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, dataview.ErrDuplicateRowKey):
		return http.StatusConflict
	case errors.Is(err, dataview.ErrInvalidRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dataview.ErrInvalidSession), errors.Is(err, dataview.ErrInvalidTable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
