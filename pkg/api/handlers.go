package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/rnadraw/pkg/buildinfo"
	"github.com/matzehuels/rnadraw/pkg/cache"
	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

type drawResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Formats     []string           `json:"formats"`
	URLs        map[string]string  `json:"urls"`
	Residues    int                `json:"residues"`
	Pairs       int                `json:"pairs"`
	Pseudoknots int                `json:"pseudoknots"`
	Size        pipeline.Size      `json:"size"`
	Box         layout.BoundingBox `json:"bbox"`
	Cached      bool               `json:"cached"`
}

type layoutResponse struct {
	Residues  int                `json:"residues"`
	Structure string             `json:"structure"`
	Points    []layout.Point     `json:"points"`
	Box       layout.BoundingBox `json:"bbox"`
	Edges     []layout.Edge      `json:"edges"`
	Spacing   layout.Spacing     `json:"spacing"`
	Size      pipeline.Size      `json:"size"`
}

type colorsResponse struct {
	Colors []string `json:"colors"`
}

type palettesResponse struct {
	Schemes     []string `json:"schemes"`
	Categorical []string `json:"categorical"`
	Continuous  []string `json:"continuous"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// decodeOptions reads pipeline options from the body and applies the
// server configuration.
func (s *Server) decodeOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return opts, err
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	opts.ApplyConfig(s.cfg)
	opts.Logger = s.log
	return opts, nil
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	name := opts.Name
	if name == "" {
		name = pipeline.DefaultName
	}
	id := uuid.NewString()
	resp := drawResponse{
		ID:          id,
		Name:        name,
		URLs:        make(map[string]string, len(result.Artifacts)),
		Residues:    result.Stats.Residues,
		Pairs:       result.Stats.Pairs,
		Pseudoknots: result.Stats.Pseudoknots,
		Size:        result.Size,
		Box:         result.Layout.Box,
		Cached:      result.CacheInfo.RenderHit,
	}
	var stored []string
	for format, data := range result.Artifacts {
		key := s.keyer.DrawingKey(id, format)
		if err := s.runner.Cache.Set(r.Context(), key, data, cache.TTLDrawing); err != nil {
			s.dropDrawing(r.Context(), id, stored)
			writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store drawing"))
			return
		}
		stored = append(stored, key)
		resp.Formats = append(resp.Formats, format)
		resp.URLs[format] = fmt.Sprintf("/api/v1/drawings/%s/%s", id, format)
	}
	slices.Sort(resp.Formats)

	s.log.Info("drew structure", "id", id, "residues", resp.Residues, "formats", resp.Formats)
	writeJSON(w, http.StatusCreated, resp)
}

// dropDrawing removes the artifacts of a drawing that could not be stored
// in full, so its id never resolves to a partial set of formats.
func (s *Server) dropDrawing(ctx context.Context, id string, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.runner.Cache.Delete(ctx, key); err != nil {
			s.log.Warn("drop partial drawing", "id", id, "key", key, "error", err)
		}
	}
}

func (s *Server) handleDrawing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := strings.ToLower(chi.URLParam(r, "format"))
	if err := errors.ValidateDrawingID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	data, hit, err := s.runner.Cache.Get(r.Context(), s.keyer.DrawingKey(id, format))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load drawing"))
		return
	}
	if !hit {
		writeError(w, errors.New(errors.ErrCodeNotFound, "drawing %s has no %s artifact", id, format))
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", id+"."+format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Prepare(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Residues:  result.Layout.Len(),
		Structure: result.Structure.String(),
		Points:    result.Layout.Points,
		Box:       result.Layout.Box,
		Edges:     result.Layout.Edges,
		Spacing:   result.Layout.Spacing,
		Size:      result.Size,
	})
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	pm, err := pipeline.Parse(opts)
	if err != nil {
		writeError(w, err)
		return
	}
	colors, err := pipeline.Colors(pm, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := colorsResponse{Colors: make([]string, len(colors))}
	for i, c := range colors {
		resp.Colors[i] = c.Hex()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, palettesResponse{
		Schemes:     coloring.SchemeNames(),
		Categorical: coloring.CategoricalNames(),
		Continuous:  coloring.ContinuousNames(),
	})
}
