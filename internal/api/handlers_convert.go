package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/docpad/internal/docio"
	"github.com/dgallion1/docpad/internal/latency"
	"github.com/dgallion1/docpad/internal/parser"
	"github.com/dgallion1/docpad/internal/pipeline"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// errTooLarge marks an upload over MaxUploadBytes.
var errTooLarge = errors.New("file exceeds max size")

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r, docio.CanOpen)
	if !ok {
		return
	}

	start := time.Now()
	loaded, err := s.docs.DecodeBytes(r.Context(), filename, data)
	s.observe(latency.OpDecode, start)
	if err != nil {
		s.writeDocError(w, err)
		return
	}

	resp := map[string]any{
		"filename":     filename,
		"outcome":      loaded.Outcome,
		"text":         loaded.Text,
		"content_hash": pipeline.ContentHashHex(data),
	}
	if loaded.Charset != "" {
		resp["charset"] = loaded.Charset
	}
	writeJSON(w, http.StatusOK, resp)
}

type encodeRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}

	filename := "document.docx"
	if req.Filename != "" {
		filename = sanitizeFilename(req.Filename)
	}
	if parser.Ext(filename) != ".docx" {
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".docx"
	}

	start := time.Now()
	data, err := s.docs.EncodeBytes(r.Context(), req.Text)
	s.observe(latency.OpEncode, start)
	if err != nil {
		s.writeDocError(w, err)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r, parser.IsSupportedExtension)
	if !ok {
		return
	}

	start := time.Now()
	summary, err := s.docs.ProfileBytes(r.Context(), filename, data)
	s.observe(latency.OpProfile, start)
	if err != nil {
		s.writeDocError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filename": filename,
		"summary":  summary,
		"report":   summary.String(),
	})
}

// readUpload reads the multipart "file" field. It writes the error response
// itself and reports false when the request cannot be served.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, accept func(string) bool) (string, []byte, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !accept(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := s.readLimited(file)
	if errors.Is(err, errTooLarge) {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	return filename, data, true
}

// readPart reads one uploaded file, bounded by MaxUploadBytes.
func (s *Server) readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.readLimited(f)
}

func (s *Server) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, errTooLarge
	}
	return data, nil
}

// writeDocError maps docio errors onto HTTP statuses.
func (s *Server) writeDocError(w http.ResponseWriter, err error) {
	var decodeErr *docio.DecodeFailure
	var encodeErr *docio.EncodeFailure
	switch {
	case errors.Is(err, docio.ErrUnsupportedFormat):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, docio.ErrFileTooLarge):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.As(err, &decodeErr):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &encodeErr):
		s.log.Error("encode failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	default:
		s.log.Error("request failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) observe(op string, start time.Time) {
	if s.stats != nil {
		s.stats.Observe(op, start)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" || name == "_" {
		name = "unnamed"
	}
	return name
}
