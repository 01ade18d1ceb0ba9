package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"depscope/analysis"
	"depscope/graph"
	"depscope/manifest"
	"depscope/storage"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Storage interface {
	ListAnalysesFiltered(ctx context.Context, name string, minRisk string) ([]storage.Analysis, error)
	GetAnalysis(ctx context.Context, id int64) (storage.Analysis, error)
	DeleteAnalysis(ctx context.Context, id int64) error
}

type AnalysisManager interface {
	Run(ctx context.Context, name, source string, pkgs []graph.Package) (*analysis.Result, error)
	RescanVulnerabilities(ctx context.Context) error
}

type Handler struct {
	Store   Storage
	Manager AnalysisManager
	Log     *logrus.Logger
}

type AnalyzeRequest struct {
	Name     string          `json:"name"`
	Source   string          `json:"source"`
	Packages []graph.Package `json:"packages,omitempty"`
	Manifest json.RawMessage `json:"manifest,omitempty"`
}

func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.Source == "" {
		http.Error(w, "no source code provided", http.StatusBadRequest)
		return
	}

	pkgs := req.Packages
	if pkgs == nil {
		if req.Manifest == nil {
			http.Error(w, "packages or manifest is required", http.StatusBadRequest)
			return
		}
		parsed, err := manifest.ParsePackageJSON(req.Manifest)
		if err != nil {
			http.Error(w, "invalid package manifest", http.StatusBadRequest)
			return
		}
		pkgs = parsed
	}

	name := req.Name
	if name == "" {
		name = "untitled"
	}

	result, err := h.Manager.Run(r.Context(), name, req.Source, pkgs)
	if err != nil {
		h.Log.WithError(err).Error("running analysis")
		http.Error(w, "failed to analyze dependencies", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Log.WithError(err).Error("encoding analysis response")
	}
}

func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	minRisk := r.URL.Query().Get("min_risk")

	if minRisk != "" {
		if _, ok := storage.RiskRank(minRisk); !ok {
			http.Error(w, "invalid min_risk value", http.StatusBadRequest)
			return
		}
	}

	list, err := h.Store.ListAnalysesFiltered(r.Context(), name, minRisk)
	if err != nil {
		h.Log.WithError(err).Error("listing analyses with filters")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		h.Log.WithError(err).Error("encoding analyses list response")
	}
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid analysis id", http.StatusBadRequest)
		return
	}

	rec, err := h.Store.GetAnalysis(r.Context(), id)
	if err != nil {
		h.Log.WithFields(logrus.Fields{"id": id}).WithError(err).Error("fetching analysis")
		http.Error(w, "analysis not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.Log.WithError(err).Error("encoding single analysis response")
	}
}

func (h *Handler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid analysis id", http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteAnalysis(r.Context(), id); err != nil {
		h.Log.WithError(err).Error("deleting analysis")
		http.Error(w, "failed to delete analysis", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportAnalysis re-exports a stored graph as JSON or Graphviz DOT.
func (h *Handler) ExportAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid analysis id", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "dot" {
		http.Error(w, "unsupported export format", http.StatusBadRequest)
		return
	}

	rec, err := h.Store.GetAnalysis(r.Context(), id)
	if err != nil {
		http.Error(w, "analysis not found", http.StatusNotFound)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(rec.GraphJSON); err != nil {
			h.Log.WithError(err).Error("writing JSON export")
		}
	case "dot":
		var g graph.Graph
		if err := json.Unmarshal(rec.GraphJSON, &g); err != nil {
			h.Log.WithError(err).Error("decoding stored graph for export")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		if _, err := w.Write([]byte(graph.ExportDOT(&g))); err != nil {
			h.Log.WithError(err).Error("writing DOT export")
		}
	}
}

func (h *Handler) RescanHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.RescanVulnerabilities(r.Context()); err != nil {
		h.Log.WithError(err).Error("failed to rescan vulnerabilities")
		http.Error(w, "failed to rescan vulnerabilities", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
