package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/config"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/ingest"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/internalerr"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		dbPath     = flag.String("db", "", "Database path (overrides config)")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("open database %s: %v", cfg.DBPath, err)
	}

	tokenizer := ingest.NewTokenizer(ingest.DefaultStopwords)
	for _, w := range cfg.ExtraStopwords {
		tokenizer.AddStopword(w)
	}

	svc := analyzer.New(analyzer.Options{
		Store:     st,
		Tokenizer: tokenizer,
		TopN:      cfg.TopN,
	})
	defer svc.Close()

	srv := &server{svc: svc, topN: cfg.TopN}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/search", srv.handleSearch)
	r.Get("/api/documents", srv.handleList)
	r.Post("/api/documents", srv.handleIngest)
	r.Get("/api/documents/{filename}", srv.handleStats)
	r.Delete("/api/documents/{filename}", srv.handleDelete)

	log.Printf("Listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

type server struct {
	svc  *analyzer.Analyzer
	topN int
}

type searchResult struct {
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	topN := s.topN
	if n, err := strconv.Atoi(r.URL.Query().Get("n")); err == nil && n > 0 {
		topN = n
	}

	results, err := s.svc.Search(r.Context(), query, topN)
	if err != nil {
		if errors.Is(err, internalerr.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "no valid search terms")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]searchResult, len(results))
	for i, res := range results {
		out[i] = searchResult{Filename: res.Filename, Score: res.Score}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.svc.ListDocuments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

type ingestRequest struct {
	Path string `json:"path"`
}

func (s *server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, `expected JSON body {"path": "..."}`)
		return
	}

	if err := s.svc.ProcessDocument(r.Context(), req.Path); err != nil {
		switch {
		case errors.Is(err, internalerr.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, internalerr.ErrNoText), errors.Is(err, internalerr.ErrEmptyContent):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "processed"})
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	st, err := s.svc.Stats(r.Context(), filename)
	if err != nil {
		if errors.Is(err, internalerr.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := s.svc.RemoveDocument(r.Context(), filename); err != nil {
		if errors.Is(err, internalerr.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
