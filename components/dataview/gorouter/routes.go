package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dataview/components/dataview"
	"github.com/goliatone/go-dataview/components/dataview/commands"
	"github.com/goliatone/go-dataview/components/dataview/httpapi"
	"github.com/goliatone/go-dataview/components/dataview/queries"
)

// ViewerResolver converts a router.Context into a dataview.ViewerContext.
type ViewerResolver func(router.Context) dataview.ViewerContext

// Config wires go-router with dataview controllers, APIs, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dataview.Controller
	API            httpapi.Executor
	Broadcast      *dataview.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dataview endpoints.
type RouteConfig struct {
	HTML      string
	Sessions  string
	Session   string
	Filter    string
	Search    string
	Page      string
	Reload    string
	Rows      string
	Row       string
	WebSocket string
}

// Register mounts table routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		var err error
		if session := strings.TrimSpace(ctx.Query("session")); session != "" {
			err = cfg.Controller.RenderSession(ctx.Context(), session, &buf)
		} else {
			err = cfg.Controller.RenderTemplate(ctx.Context(), ctx.Param("code"), viewerResolver(ctx), &buf)
		}
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Sessions, router.WrapHandler(func(ctx router.Context) error {
		var req dataview.OpenSessionRequest
		if err := decodeBody(ctx, &req); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if code := ctx.Param("code"); code != "" {
			req.TableCode = code
		}
		req.Viewer = resolver(ctx)
		payload, err := api.Open(ctx.Context(), req)
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, payload)
	}))

	r.Get(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		return respondView(ctx, api, ctx.Param("id"))
	}))

	r.Delete(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Close(ctx.Context(), commands.CloseSessionInput{SessionID: ctx.Param("id")}); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "closed"})
	}))

	r.Post(routes.Filter, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetStatusFilterInput
		if err := decodeBody(ctx, &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.SessionID = ctx.Param("id")
		if err := api.Filter(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondView(ctx, api, payload.SessionID)
	}))

	r.Post(routes.Search, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetSearchQueryInput
		if err := decodeBody(ctx, &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.SessionID = ctx.Param("id")
		if err := api.Search(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondView(ctx, api, payload.SessionID)
	}))

	r.Post(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetPageInput
		if err := decodeBody(ctx, &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if payload.Page == 0 {
			if n, err := strconv.Atoi(ctx.Query("page")); err == nil {
				payload.Page = n
			}
		}
		payload.SessionID = ctx.Param("id")
		if err := api.Page(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondView(ctx, api, payload.SessionID)
	}))

	r.Post(routes.Reload, router.WrapHandler(func(ctx router.Context) error {
		input := commands.ReloadInput{SessionID: ctx.Param("id"), Viewer: resolver(ctx)}
		if err := api.Reload(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondView(ctx, api, input.SessionID)
	}))

	r.Post(routes.Rows, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddRowInput
		if err := decodeBody(ctx, &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.SessionID = ctx.Param("id")
		payload.UserID = resolver(ctx).UserID
		if err := api.Add(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.Row, router.WrapHandler(func(ctx router.Context) error {
		key := ctx.Param("key")
		if key == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("row key is required"))
		}
		input := commands.RemoveRowInput{
			SessionID: ctx.Param("id"),
			RowKey:    key,
			UserID:    resolver(ctx).UserID,
		}
		if err := api.Remove(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondView(ctx, api, input.SessionID)
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dataview.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondView(ctx router.Context, api httpapi.Executor, sessionID string) error {
	payload, err := api.View(ctx.Context(), queries.ViewInput{SessionID: sessionID})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, payload)
}

func decodeBody(ctx router.Context, dst any) error {
	body := ctx.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

func defaultViewerResolver(ctx router.Context) dataview.ViewerContext {
	var viewer dataview.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		return parseAcceptLanguage(header)
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/tables/:code"
	}
	if routes.Sessions == "" {
		routes.Sessions = "/tables/:code/sessions"
	}
	if routes.Session == "" {
		routes.Session = "/sessions/:id"
	}
	if routes.Filter == "" {
		routes.Filter = "/sessions/:id/filter"
	}
	if routes.Search == "" {
		routes.Search = "/sessions/:id/search"
	}
	if routes.Page == "" {
		routes.Page = "/sessions/:id/page"
	}
	if routes.Reload == "" {
		routes.Reload = "/sessions/:id/reload"
	}
	if routes.Rows == "" {
		routes.Rows = "/sessions/:id/rows"
	}
	if routes.Row == "" {
		routes.Row = "/sessions/:id/rows/:key"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/tables/ws"
	}
	return routes
}
