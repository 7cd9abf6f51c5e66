package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/kasuboski/guessr/pkg/cache"
	"github.com/kasuboski/guessr/pkg/guesser"
	"github.com/kasuboski/guessr/pkg/language"
	"github.com/kasuboski/guessr/pkg/logger"
	"github.com/kasuboski/guessr/pkg/pagination"
	"github.com/kasuboski/guessr/pkg/storage"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server houses all dependencies for the guess server to work such as loggers, the pipeline, storage, etc.
type Server struct {
	baseLogger *zap.SugaredLogger
	guesser    *guesser.Guesser
	store      storage.Storage
	memo       *cache.Cache[string, guessResponse]
}

// New creates a new guess server
func New(logger *zap.SugaredLogger, g *guesser.Guesser, store storage.Storage) Server {
	return Server{
		baseLogger: logger,
		guesser:    g,
		store:      store,
		memo:       cache.New[string, guessResponse](),
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/guess", s.GuessName()).Methods(http.MethodGet)
	v1.HandleFunc("/guesses", s.ListGuesses()).Methods(http.MethodGet)
	v1.HandleFunc("/guesses", s.DeleteGuess()).Methods(http.MethodDelete)

	v1.HandleFunc("/language/search", s.SearchLanguage()).Methods(http.MethodGet)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsHandler,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

type guessResponse struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
	Confidence map[string]any `json:"confidence"`
	Cached     bool           `json:"cached"`
}

// GuessName runs the pipeline for a release name, consulting the cache first
func (s Server) GuessName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		if s.memo != nil {
			if resp, ok := s.memo.Get(name); ok {
				writeResponse(w, http.StatusOK, GenericResponse{Response: resp})
				return
			}
		}

		if s.store != nil {
			record, err := s.store.GetGuess(r.Context(), name)
			if err == nil {
				resp, err := responseFromRecord(record)
				if err == nil {
					s.memo.Set(name, resp)
					writeResponse(w, http.StatusOK, GenericResponse{Response: resp})
					return
				}
				log.Warnw("discarding bad cache record", "name", name, "error", err)
			} else if !errors.Is(err, storage.ErrNotFound) {
				log.Warnw("cache lookup failed", "name", name, "error", err)
			}
		}

		g, _, err := s.guesser.Guess(r.Context(), name)
		if err != nil {
			log.Error("failed to guess name", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		resp := guessResponse{
			Name:       name,
			Properties: map[string]any{},
			Confidence: map[string]any{},
		}
		for _, p := range g.Properties() {
			v, _ := g.Value(p)
			resp.Properties[p] = v
			resp.Confidence[p] = g.Confidence(p)
		}

		if s.store != nil {
			if record, err := recordFromResponse(resp); err == nil {
				if _, err := s.store.PutGuess(r.Context(), record); err != nil {
					log.Warnw("failed to cache guess", "name", name, "error", err)
				}
			}
		}
		if s.memo != nil {
			memoed := resp
			memoed.Cached = true
			s.memo.Set(name, memoed)
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: resp})
	}
}

type listGuessesResponse struct {
	Guesses []storage.GuessRecord `json:"guesses"`
	Meta    pagination.Meta       `json:"meta"`
}

// ListGuesses lists the cached guess results, newest first
func (s Server) ListGuesses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		params, err := ParsePaginationParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		records, err := s.store.ListGuesses(r.Context())
		if err != nil {
			log.Error("failed to list guesses", zap.Error(err))
			http.Error(w, "failed to list guesses", http.StatusInternalServerError)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: listGuessesResponse{
			Guesses: pagination.Page(records, params),
			Meta:    params.BuildMeta(len(records)),
		}})
	}
}

// DeleteGuess evicts a cached guess result by name
func (s Server) DeleteGuess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		if err := s.store.DeleteGuess(r.Context(), name); err != nil {
			log.Error("failed to delete guess", zap.Error(err))
			http.Error(w, "failed to delete guess", http.StatusInternalServerError)
			return
		}
		if s.memo != nil {
			s.memo.Delete(name)
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}

type languageMatchResponse struct {
	Language   string  `json:"language"`
	Alpha3     string  `json:"alpha3"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// SearchLanguage looks for a language identifier inside arbitrary text
func (s Server) SearchLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qps := r.URL.Query()
		text := qps.Get("text")
		if text == "" {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}

		var allowed []string
		if f := qps.Get("allowed"); f != "" {
			allowed = splitCommaList(f)
		}

		match, err := language.Search(text, allowed...)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
		if match == nil {
			writeResponse(w, http.StatusOK, GenericResponse{Response: nil})
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: languageMatchResponse{
			Language:   match.Language.String(),
			Alpha3:     match.Language.Alpha3(),
			Start:      match.Start,
			End:        match.End,
			Confidence: match.Confidence,
		}})
	}
}

func responseFromRecord(record storage.GuessRecord) (guessResponse, error) {
	resp := guessResponse{Name: record.Name, Cached: true}
	if err := json.Unmarshal([]byte(record.Properties), &resp.Properties); err != nil {
		return resp, err
	}
	if err := json.Unmarshal([]byte(record.Confidence), &resp.Confidence); err != nil {
		return resp, err
	}
	return resp, nil
}

func recordFromResponse(resp guessResponse) (storage.GuessRecord, error) {
	props, err := json.Marshal(resp.Properties)
	if err != nil {
		return storage.GuessRecord{}, err
	}
	conf, err := json.Marshal(resp.Confidence)
	if err != nil {
		return storage.GuessRecord{}, err
	}
	return storage.GuessRecord{
		Name:       resp.Name,
		Properties: string(props),
		Confidence: string(conf),
	}, nil
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
