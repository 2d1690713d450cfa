// Package assets serves the saved images, screenshots, and recordings that
// the extraction pipeline writes alongside the catalog.
package assets

import (
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/groundtruth/pkg/handlers"
	"github.com/JaimeStill/groundtruth/pkg/middleware"
	"github.com/JaimeStill/groundtruth/pkg/module"
	"github.com/JaimeStill/groundtruth/pkg/routes"
	"github.com/JaimeStill/groundtruth/pkg/storage"
)

// Mount points for asset modules and the storage key prefixes they serve.
const (
	SavedImagesPrefix   = "/saved_images"
	BrowserClientPrefix = "/browser_client_interface"
)

// Handler serves stored objects under a key prefix.
// With no dirs, every path under the module is served; otherwise only the named
// subdirectories are.
type Handler struct {
	store     storage.System
	logger    *slog.Logger
	keyPrefix string
	dirs      []string
}

// NewHandler creates a Handler that maps request paths to keys under keyPrefix.
func NewHandler(store storage.System, logger *slog.Logger, keyPrefix string, dirs ...string) *Handler {
	return &Handler{
		store:     store,
		logger:    logger.With("handler", "assets", "prefix", keyPrefix),
		keyPrefix: keyPrefix,
		dirs:      dirs,
	}
}

// Routes returns the route group definition for asset endpoints.
func (h *Handler) Routes() routes.Group {
	if len(h.dirs) == 0 {
		return routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{path...}", Handler: h.Serve},
			},
		}
	}

	group := routes.Group{}
	for _, dir := range h.dirs {
		group.Children = append(group.Children, routes.Group{
			Prefix: "/" + dir,
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{path...}", Handler: h.Serve},
			},
		})
	}
	return group
}

// Serve streams the object addressed by the request path.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("path") == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, storage.ErrEmptyKey)
		return
	}

	key := h.keyPrefix + r.URL.Path

	obj, err := h.store.Open(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)

	if rs, ok := obj.Body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, path.Base(key), obj.ModTime, rs)
		return
	}

	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	io.Copy(w, obj.Body)
}

// NewModules creates the saved image and browser capture modules.
func NewModules(store storage.System, logger *slog.Logger) []*module.Module {
	return []*module.Module{
		newModule(SavedImagesPrefix, NewHandler(store, logger, "saved_images")),
		newModule(BrowserClientPrefix, NewHandler(store, logger, "browser_client_interface", "screenshots", "recordings")),
	}
}

func newModule(prefix string, h *Handler) *module.Module {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())

	m := module.New(prefix, mux)
	m.Use(middleware.Logger(h.logger))
	m.Use(middleware.Recover(h.logger))
	return m
}
