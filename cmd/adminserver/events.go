package main

import (
	"net/http"

	"github.com/goliatone/go-dataview/components/dataview/httpapi"
)

// eventsMux serves the stdlib transports: SSE and WebSocket view events plus
// the JSON session API for clients outside the fiber app.
func (a *app) eventsMux() *http.ServeMux {
	h := &httpapi.Handlers{
		Filter: a.executor.FilterCommander,
		Search: a.executor.SearchCommander,
		Page:   a.executor.PageCommander,
		Remove: a.executor.RemoveCommander,
		Add:    a.executor.AddCommander,
		Reload: a.executor.ReloadCommander,
		Close:  a.executor.CloseCommander,
		View:   a.executor.ViewQuerier,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events", a.hook.ServeSSE)
	mux.HandleFunc("GET /ws", a.hook.ServeWebSocket)
	mux.HandleFunc("GET /sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleView(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("DELETE /sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleCloseSession(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /sessions/{id}/filter", func(w http.ResponseWriter, r *http.Request) {
		h.HandleSetStatusFilter(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /sessions/{id}/search", func(w http.ResponseWriter, r *http.Request) {
		h.HandleSetSearchQuery(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /sessions/{id}/page", func(w http.ResponseWriter, r *http.Request) {
		h.HandleSetPage(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /sessions/{id}/reload", func(w http.ResponseWriter, r *http.Request) {
		h.HandleReload(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /sessions/{id}/rows", func(w http.ResponseWriter, r *http.Request) {
		h.HandleAddRow(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("DELETE /sessions/{id}/rows/{key}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleRemoveRow(w, r, r.PathValue("id"), r.PathValue("key"))
	})
	return mux
}
