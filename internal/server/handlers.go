package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/wozhendeai/generative-town/internal/store"
	"github.com/wozhendeai/generative-town/pkg/analytics"
	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/network"
	"github.com/wozhendeai/generative-town/pkg/render"
	"github.com/wozhendeai/generative-town/pkg/roads"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors onto stable kinds so agents can branch
// on them without parsing messages.
func writeError(w http.ResponseWriter, status int, err error) {
	kind := ""
	var unknown *catalog.UnknownTileError
	switch {
	case errors.As(err, &unknown):
		kind = "unknown_tile"
	case errors.Is(err, grid.ErrOutOfBounds):
		kind = "out_of_bounds"
	case errors.Is(err, roads.ErrBudgetExceeded):
		kind = "budget_exceeded"
	case errors.Is(err, roads.ErrDisconnected):
		kind = "disconnected"
	case errors.Is(err, store.ErrNotFound):
		kind = "not_found"
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: kind})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return false
	}
	return true
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tile_size": s.cat.TileSize(),
		"theme":     s.cat.Theme(),
		"tiles":     s.cat.Tiles(),
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.catReport)
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.session)
}

func (s *Server) handleGrid(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	snap := s.grid.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGridASCII(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ground := s.grid.Dump(catalog.LayerGround)
	object := s.grid.Dump(catalog.LayerObject)
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ground:\n%s\nobject:\n%s", ground, object)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats := analytics.Collect(s.grid)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleNetwork(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	rep := network.Validate(s.grid)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRepair(w http.ResponseWriter, r *http.Request) {
	_, span := s.tracer.Start(r.Context(), "network.repair")
	defer span.End()

	s.mu.Lock()
	res := network.Repair(s.grid)
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int("repair.islands_before", res.IslandsBefore),
		attribute.Int("repair.tiles_placed", res.TilesPlaced),
		attribute.Bool("repair.success", res.Success),
	)
	writeJSON(w, http.StatusOK, res)
}

type setTileRequest struct {
	X     int           `json:"x"`
	Y     int           `json:"y"`
	ID    string        `json:"id"`
	Layer catalog.Layer `json:"layer"`
}

func (s *Server) handleSetTile(w http.ResponseWriter, r *http.Request) {
	var req setTileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Layer == "" {
		req.Layer = catalog.LayerGround
	}

	s.mu.Lock()
	err := s.grid.SetTile(geo.Pt(req.X, req.Y), req.ID, req.Layer)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type clearTileRequest struct {
	X     int           `json:"x"`
	Y     int           `json:"y"`
	Layer catalog.Layer `json:"layer"`
}

func (s *Server) handleClearTile(w http.ResponseWriter, r *http.Request) {
	var req clearTileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Layer == "" {
		req.Layer = catalog.LayerGround
	}

	s.mu.Lock()
	s.grid.ClearTile(geo.Pt(req.X, req.Y), req.Layer)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type placePathRequest struct {
	From geo.Point `json:"from"`
	To   geo.Point `json:"to"`
}

func (s *Server) handlePlacePath(w http.ResponseWriter, r *http.Request) {
	var req placePathRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, span := s.tracer.Start(r.Context(), "roads.place_path")
	defer span.End()

	s.mu.Lock()
	res, err := s.session.Place(s.grid, req.From, req.To)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	span.SetAttributes(
		attribute.Int("path.route_tiles", len(res.Route)),
		attribute.Int("path.placed", res.Placed),
		attribute.Int("path.unresolved", len(res.Unresolved)),
	)
	writeJSON(w, http.StatusOK, res)
}

type renderRequest struct {
	Scale      int             `json:"scale"`
	Format     render.Format   `json:"format"`
	Background string          `json:"background"`
	Layers     []catalog.Layer `json:"layers"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if s.atlas == nil {
		writeError(w, http.StatusConflict, errors.New("no atlas configured for this map"))
		return
	}

	req := renderRequest{Scale: 1}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	_, span := s.tracer.Start(r.Context(), "render.compose")
	defer span.End()

	opts := render.DefaultOptions()
	if req.Scale != 0 {
		opts.Scale = req.Scale
	}
	if req.Format != "" {
		opts.Format = req.Format
	}
	if req.Background != "" {
		opts.Background = req.Background
	}
	if len(req.Layers) > 0 {
		opts.Layers = req.Layers
	}

	s.mu.Lock()
	res, err := render.Render(s.grid, s.atlas, opts)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Encode(&buf, res.Image, opts.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	span.SetAttributes(
		attribute.Int("render.ground_tiles", res.GroundTiles),
		attribute.Int("render.object_tiles", res.ObjectTiles),
		attribute.Int("render.sprites_extracted", res.SpritesExtracted),
	)
	w.Header().Set("Content-Type", render.ContentType(opts.Format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) requireStorage(w http.ResponseWriter) bool {
	if s.storage == nil {
		writeError(w, http.StatusConflict, errors.New("no store configured"))
		return false
	}
	return true
}

func (s *Server) handleListMaps(w http.ResponseWriter, _ *http.Request) {
	if !s.requireStorage(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"maps": s.storage.ListMaps()})
}

func (s *Server) handleSaveMap(w http.ResponseWriter, r *http.Request) {
	if !s.requireStorage(w) {
		return
	}
	name := r.PathValue("name")

	s.mu.Lock()
	snap := s.grid.Snapshot()
	sess := s.session
	s.mu.Unlock()

	if err := s.storage.SaveMap(name, snap); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.storage.SaveSession(sess); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": name, "session": sess.ID})
}

// loadMapRequest optionally names a saved session to resume along with
// the map; the current session stays in place otherwise.
type loadMapRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleLoadMap(w http.ResponseWriter, r *http.Request) {
	if !s.requireStorage(w) {
		return
	}
	name := r.PathValue("name")

	var req loadMapRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	snap, err := s.storage.LoadMap(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	g, err := grid.Restore(s.cat, snap)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("restore %q: %w", name, err))
		return
	}

	var sess *roads.Session
	if req.SessionID != "" {
		sess, err = s.storage.LoadSession(req.SessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
	}

	s.mu.Lock()
	s.grid = g
	if sess != nil {
		s.session = sess
	}
	id := s.session.ID
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"loaded": name, "session": id})
}

func (s *Server) handleDeleteMap(w http.ResponseWriter, r *http.Request) {
	if !s.requireStorage(w) {
		return
	}
	name := r.PathValue("name")

	if err := s.storage.DeleteMap(name); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}
