package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/editor"
	"github.com/jmylchreest/legible/internal/options"
	"github.com/jmylchreest/legible/internal/palette"
	"github.com/jmylchreest/legible/internal/settings"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is an API error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

// HealthResponse reports the palette store state.
type HealthResponse struct {
	State string `json:"state"`
}

// PaletteResponse is a filtered picker palette.
type PaletteResponse struct {
	Reference string          `json:"reference"`
	Level     string          `json:"level"`
	Colours   palette.Palette `json:"colours"`
}

// SelectionRequest carries the selection's effective colours. Either field
// may be a plain string or a wrapped descriptor such as {"value": "#000"}.
type SelectionRequest struct {
	Colour           any `json:"color"`
	BackgroundColour any `json:"backgroundColor"`
}

func (req SelectionRequest) selection() editor.Selection {
	sel := editor.Selection{}
	if req.Colour != nil {
		sel.Colour = options.ColourString(req.Colour)
	}
	if req.BackgroundColour != nil {
		sel.BackgroundColour = options.ColourString(req.BackgroundColour)
	}
	return sel
}

// ResetRequest asks for a palette to be restored after a colour was removed.
type ResetRequest struct {
	Format string `json:"format"`
	SelectionRequest
}

// PublishedResponse holds the palettes currently published in the registry.
type PublishedResponse struct {
	Texts       palette.Palette `json:"texts"`
	Backgrounds palette.Palette `json:"backgrounds"`
}

// ContrastResponse is a contrast report with the verdict at the requested level.
type ContrastResponse struct {
	accessibility.Report
	Level      string `json:"level"`
	Accessible bool   `json:"accessible"`
}

// ColoursResponse lists the captured palettes and the built-in defaults.
type ColoursResponse struct {
	TextColours       palette.Palette `json:"textcolors"`
	BackgroundColours palette.Palette `json:"backgroundcolors"`
	Defaults          settings.List   `json:"defaults"`
}

// ValidationResponse is returned by a successful colour list validation.
type ValidationResponse struct {
	Colours settings.List `json:"colours"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, err string, msg string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: msg})
}

// writeStoreError maps palette store errors to responses.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, palette.ErrNotInitialised) {
		writeError(w, http.StatusServiceUnavailable, "not_ready", err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.store.State()
	status := http.StatusServiceUnavailable
	if state == palette.StateReady {
		status = http.StatusOK
		storeReady.Set(1)
	} else {
		storeReady.Set(0)
	}
	writeJSON(w, status, HealthResponse{State: state.String()})
}

// handleTextPalette returns the text colours legible on ?background=.
// A missing background means the editor default, white.
func (s *Server) handleTextPalette(w http.ResponseWriter, r *http.Request) {
	bg := r.URL.Query().Get("background")
	if bg == "" {
		bg = colour.White
	}

	texts, err := s.handler.Filter().TextsForBackground(bg)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	paletteSize.WithLabelValues("text").Observe(float64(len(texts)))
	writeJSON(w, http.StatusOK, PaletteResponse{
		Reference: colour.NormalizeToHex(bg),
		Level:     s.config.Level.String(),
		Colours:   texts,
	})
}

// handleBackgroundPalette returns the backgrounds legible behind ?text=.
// A missing text colour means the editor default, black.
func (s *Server) handleBackgroundPalette(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		text = colour.Black
	}

	backgrounds, err := s.handler.Filter().BackgroundsForText(text)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	paletteSize.WithLabelValues("background").Observe(float64(len(backgrounds)))
	writeJSON(w, http.StatusOK, PaletteResponse{
		Reference: colour.NormalizeToHex(text),
		Level:     s.config.Level.String(),
		Colours:   backgrounds,
	})
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}

	result, err := s.handler.OnChange(req.selection())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	paletteSize.WithLabelValues("text").Observe(float64(len(result.Texts)))
	paletteSize.WithLabelValues("background").Observe(float64(len(result.Backgrounds)))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}

	format, err := editor.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := s.handler.Reset(format, req.selection()); err != nil {
		writeStoreError(w, err)
		return
	}

	texts, _ := s.registry.Palette(options.Name(options.TextColours))
	backgrounds, _ := s.registry.Palette(options.Name(options.BackgroundColours))
	writeJSON(w, http.StatusOK, PublishedResponse{Texts: texts, Backgrounds: backgrounds})
}

func (s *Server) handleListOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Names())
}

// handleGetOption returns an option by short key ("textcolors") or full name.
func (s *Server) handleGetOption(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	name := key
	if _, ok := s.registry.Get(name); !ok {
		name = options.Name(key)
	}

	value, ok := s.registry.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "option "+key+" is not set")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "value": value})
}

func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fg, bg := q.Get("fg"), q.Get("bg")
	if fg == "" || bg == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "fg and bg are required")
		return
	}

	level := s.config.Level
	if v := q.Get("level"); v != "" {
		parsed, err := accessibility.ParseLevel(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		level = parsed
	}

	report := accessibility.Check(fg, bg)
	writeJSON(w, http.StatusOK, ContrastResponse{
		Report:     report,
		Level:      level.String(),
		Accessible: report.Ratio >= accessibility.Threshold(level),
	})
}

func (s *Server) handleGetColours(w http.ResponseWriter, r *http.Request) {
	texts, err := s.store.Texts()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	backgrounds, err := s.store.Backgrounds()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ColoursResponse{
		TextColours:       texts,
		BackgroundColours: backgrounds,
		Defaults:          settings.Defaults(),
	})
}

// handleValidateColours validates a settings form post. ?setting= names the
// field prefix (textcolors or backgroundcolors).
func (s *Server) handleValidateColours(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	setting := r.URL.Query().Get("setting")
	if setting == "" {
		setting = options.TextColours
	}

	list, err := settings.ParseForm(r.PostForm, setting)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := list.Validate(); err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "invalid",
				Message: err.Error(),
				Details: verr.Messages(),
			})
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ValidationResponse{Colours: list})
}
