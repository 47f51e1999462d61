// Package mockserver is an in-memory stand-in for the document-chat service.
// It speaks the same HTTP surface as the real backend so the client can be
// demoed and tested without a model behind it.
package mockserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/schema"

	"github.com/nexara/nexara/internal/logger"
)

// MaxUploadBytes caps multipart bodies.
const MaxUploadBytes = 32 << 20

// IndexingFailedMessage is returned when an upload produces nothing to index.
const IndexingFailedMessage = "File was uploaded but indexing failed. Retriever is empty."

// indexableExtensions lists what the real service knows how to index.
var indexableExtensions = map[string]bool{
	".pdf": true, ".docx": true, ".doc": true, ".ppt": true, ".pptx": true,
	".txt": true, ".xlsx": true, ".xls": true, ".html": true, ".css": true,
	".js": true, ".py": true, ".md": true, ".json": true, ".csv": true,
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// Document is an indexed upload.
type Document struct {
	Name  string
	Size  int64
	Added time.Time
}

// Server holds the indexed documents.
type Server struct {
	mu        sync.Mutex
	documents map[string]Document
	latency   time.Duration
	log       *slog.Logger
	decoder   *schema.Decoder
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every upload and chat reply, to make loading states visible.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// New returns an empty server.
func New(opts ...Option) *Server {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	s := &Server{
		documents: make(map[string]Document),
		log:       logger.WithComponent("mockserver"),
		decoder:   d,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/upload", s.handleUpload)
	r.Post("/chat", s.handleChat)
	r.Get("/clear", s.handleClear)
	r.Get("/health", s.handleHealth)
	return r
}

// Documents returns the indexed document names, sorted.
func (s *Server) Documents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.documents))
	for name := range s.documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) wait(r *http.Request) {
	if s.latency <= 0 {
		return
	}
	select {
	case <-time.After(s.latency):
	case <-r.Context().Done():
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.wait(r)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected a multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	size, err := io.Copy(io.Discard, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	// One document at a time: a new upload replaces the knowledge base.
	s.documents = make(map[string]Document)
	ext := strings.ToLower(filepath.Ext(header.Filename))
	indexed := size > 0 && indexableExtensions[ext]
	if indexed {
		s.documents[header.Filename] = Document{Name: header.Filename, Size: size, Added: time.Now()}
	}
	s.mu.Unlock()

	if !indexed {
		writeError(w, http.StatusInternalServerError, IndexingFailedMessage)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully uploaded and indexed %s", header.Filename),
	})
}

type chatForm struct {
	Message string `schema:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	s.wait(r)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected a multipart body")
		return
	}
	// The field must be present but may be empty when only a file is sent.
	if _, ok := r.MultipartForm.Value["message"]; !ok {
		writeError(w, http.StatusUnprocessableEntity, "message is required")
		return
	}
	var form chatForm
	if err := s.decoder.Decode(&form, r.MultipartForm.Value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var attachment string
	if file, header, err := r.FormFile("image"); err == nil {
		file.Close()
		attachment = header.Filename
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": s.answer(form.Message, attachment)})
}

func (s *Server) answer(question, attachment string) string {
	docs := s.Documents()

	var b strings.Builder
	switch {
	case len(docs) == 0 && attachment == "":
		b.WriteString("I don't have any documents yet. Upload one and ask me about it.")
	case len(docs) == 0:
		fmt.Fprintf(&b, "Looking at %s: ", attachment)
		fmt.Fprintf(&b, "you asked %q.", question)
	default:
		fmt.Fprintf(&b, "Based on %s, you asked %q.", strings.Join(docs, ", "), question)
		if attachment != "" {
			fmt.Fprintf(&b, " I also received %s.", attachment)
		}
	}
	return b.String()
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.documents = make(map[string]Document)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Knowledge base cleared successfully."})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
