package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"deckgen/internal/config"
	"deckgen/internal/deck"
	"deckgen/internal/model"
	"deckgen/internal/sheet"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type buildRequest struct {
	Config  config.Deck        `json:"config"`
	Domains []config.DomainDoc `json:"domains"`
}

// handleBuildDeck builds a deck from an inline config plus requirement data.
// With an output path the deck is saved and a summary returned; without one
// the pptx bytes come back directly.
func (s *Server) handleBuildDeck(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Config.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	domains, err := config.DomainsFromDoc(req.Domains)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(domains) == 0 && req.Config.RequirementsFile != "" {
		if domains, err = config.LoadRequirements(req.Config.RequirementsFile); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.respondBuild(w, req.Config, domains)
}

// handleBuildCustomerDeck builds from a pre-built customer config directory
// under ConfigsDir.
func (s *Server) handleBuildCustomerDeck(w http.ResponseWriter, r *http.Request) {
	customer := sanitizeName(chi.URLParam(r, "customer"))
	cfgPath := filepath.Join(s.cfg.ConfigsDir, customer, "config.yaml")
	cfg, err := config.LoadDeck(cfgPath)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	reqPath := cfg.RequirementsFile
	if reqPath == "" {
		reqPath = filepath.Join(s.cfg.ConfigsDir, customer, "requirements.json")
	}
	domains, err := config.LoadRequirements(reqPath)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.respondBuild(w, cfg, domains)
}

func (s *Server) respondBuild(w http.ResponseWriter, cfg config.Deck, domains []model.Domain) {
	pkg, err := deck.Build(cfg, domains)
	if err != nil {
		s.log.Error("deck build failed", "error", err)
		jsonError(w, err.Error(), buildStatus(err))
		return
	}
	deckID := uuid.NewString()

	if cfg.Output == "" {
		data, err := pkg.Bytes()
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", pptxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="deck.pptx"`)
		w.Header().Set("X-Deck-Id", deckID)
		w.Write(data)
		return
	}

	if err := pkg.Save(cfg.Output); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Info("deck built", "deck_id", deckID, "output", cfg.Output, "slides", pkg.SlideCount())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"deck_id": deckID,
		"output":  cfg.Output,
		"slides":  pkg.SlideCount(),
	})
}

func buildStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrTemplateNotFound),
		errors.Is(err, model.ErrUnknownLayoutKey),
		errors.Is(err, model.ErrLayoutIndexOutOfRange),
		errors.Is(err, model.ErrUnknownSlideKind),
		errors.Is(err, model.ErrImageNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleParseSheet converts an uploaded spreadsheet (csv or xlsx) into
// requirements JSON plus a parse report.
func (s *Server) handleParseSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	var (
		domains []model.Domain
		rep     sheet.Report
	)
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		domains, rep, err = sheet.ParseCSV(strings.NewReader(string(data)))
	case ".xlsx":
		domains, rep, err = sheet.ParseXLSX(data)
	default:
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(header.Filename)), http.StatusBadRequest)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.log.Info("sheet parsed",
		"filename", header.Filename,
		"domains", rep.DomainsFound,
		"requirements", rep.RequirementsTotal,
		"rows_skipped", rep.RowsSkipped,
	)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"domains": config.RequirementsDoc(domains),
		"report":  rep,
	})
}

// handleListCustomers lists config directories that hold a config.yaml.
func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.ConfigsDir)
	if err != nil {
		jsonError(w, "configs dir unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}
	customers := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.cfg.ConfigsDir, e.Name(), "config.yaml")); err == nil {
			customers = append(customers, e.Name())
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"customers": customers})
}

// handleGetRequirements returns a customer's stored requirement data.
func (s *Server) handleGetRequirements(w http.ResponseWriter, r *http.Request) {
	customer := sanitizeName(chi.URLParam(r, "customer"))
	domains, err := config.LoadRequirements(filepath.Join(s.cfg.ConfigsDir, customer, "requirements.json"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"domains": config.RequirementsDoc(domains)})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// sanitizeName keeps customer path segments to a single clean component.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
