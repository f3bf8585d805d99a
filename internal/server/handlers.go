package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ellipsegen/pkg/buildinfo"
	"github.com/matzehuels/ellipsegen/pkg/errors"
	"github.com/matzehuels/ellipsegen/pkg/io"
	"github.com/matzehuels/ellipsegen/pkg/palette"
	"github.com/matzehuels/ellipsegen/pkg/pipeline"
	"github.com/matzehuels/ellipsegen/pkg/session"
)

// maxCount bounds the ellipse count a request may ask for.
const maxCount = 500

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJPEG: "image/jpeg",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type artworkResponse struct {
	ID         string `json:"id"`
	Palette    string `json:"palette"`
	Background string `json:"background"`
	Seed       uint64 `json:"seed"`
	Ellipses   int    `json:"ellipses"`
	SVG        string `json:"svg"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Default  string            `json:"default"`
		Palettes []palette.Palette `json:"palettes"`
	}{s.runner.Registry.Default().Name, s.runner.Registry.All()})
}

func (s *Server) handleCreateArtwork(w http.ResponseWriter, r *http.Request) {
	opts, err := generateOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	art, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := session.New(art.Artwork, s.ttl)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, fmt.Errorf("store artwork: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, artworkResponse{
		ID:         sess.ID,
		Palette:    art.Palette,
		Background: art.Background,
		Seed:       art.Seed,
		Ellipses:   len(art.Ellipses),
		SVG:        art.SVG,
	})
}

// handleGetArtwork serves {id} as an inline SVG preview and {id}.{ext} as a
// download.
func (s *Server) handleGetArtwork(w http.ResponseWriter, r *http.Request) {
	id, format, download := strings.Cut(chi.URLParam(r, "file"), ".")
	if !download {
		format = pipeline.FormatSVG
	}
	format = pipeline.NormalizeFormat(format)
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.lookup(r, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}}
	if download && pipeline.IsRaster(format) {
		if opts.Width, opts.Height, err = sizeParams(r); err != nil {
			s.writeError(w, r, err)
			return
		}
		release, err := s.acquireRenderSlot(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		defer release()
	}

	out, err := s.runner.Render(r.Context(), pipeline.NewArtwork(sess.Artwork), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	if download {
		name, err := io.Filename(io.DefaultPrefix, format, s.now())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out[format])
}

// acquireRenderSlot blocks until a raster render may start or the request
// ends. The returned func frees the slot.
func (s *Server) acquireRenderSlot(r *http.Request) (func(), error) {
	select {
	case s.slots <- struct{}{}:
		return func() { <-s.slots }, nil
	case <-r.Context().Done():
		return nil, errors.Wrap(errors.ErrCodeUnavailable, r.Context().Err(), "too many renders in progress")
	}
}

func (s *Server) lookup(r *http.Request, id string) (*session.Session, error) {
	if !session.ValidID(id) {
		return nil, errors.New(errors.ErrCodeNotFound, "artwork %q not found", id)
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("load artwork: %w", err)
	}
	if sess == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "artwork %q not found or expired", id)
	}
	return sess, nil
}

// generateOptions reads palette, count and seed from the query string or a
// form body.
func generateOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := r.ParseForm(); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid form")
	}
	opts.Palette = r.Form.Get("palette")
	opts.Background = r.Form.Get("background")

	if v := r.Form.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "count must be an integer, got %q", v)
		}
		if err := errors.ValidateCount(n); err != nil {
			return opts, err
		}
		if n > maxCount {
			return opts, errors.New(errors.ErrCodeInvalidInput, "count must be at most %d, got %d", maxCount, n)
		}
		opts.Count = pipeline.Count(n)
	}
	if v := r.Form.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v)
		}
		opts.Seed = seed
	}
	return opts, nil
}

// sizeParams reads ?w= and ?h=, defaulting to the full download size.
func sizeParams(r *http.Request) (int, int, error) {
	w, h := pipeline.DefaultWidth, pipeline.DefaultHeight
	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *int
	}{{"w", &w}, {"h", &h}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidSize, "%s must be an integer, got %q", p.key, v)
		}
		*p.dst = n
	}
	if err := errors.ValidateSize(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		if errors.GetCode(err) == "" {
			msg = http.StatusText(status)
		}
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: string(errors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
