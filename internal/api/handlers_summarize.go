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

	"github.com/google/uuid"

	"github.com/dgallion1/docsum/internal/parser"
	"github.com/dgallion1/docsum/internal/pipeline"
)

var errTooLarge = errors.New("file exceeds max size")

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	path, filename, ok := s.receiveUpload(w, r)
	if !ok {
		return
	}
	defer os.Remove(path)

	doc, err := s.proc.Count(path, filename)
	if err != nil {
		s.log.Warn("token count failed", "file", filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"tokens":   doc.Tokens,
		"segments": len(doc.Segments),
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	path, filename, ok := s.receiveUpload(w, r)
	if !ok {
		return
	}
	defer os.Remove(path)

	res := s.proc.ProcessAs(r.Context(), path, filename)
	if res.Status != pipeline.StatusSaved {
		body := map[string]any{
			"filename": filename,
			"status":   res.Status,
			"stage":    res.Stage,
			"tokens":   res.Tokens,
			"error":    errString(res.Err),
		}
		if res.FailedAt > 0 {
			body["failed_chunk"] = res.FailedAt
			body["chunks"] = res.Chunks
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename":    filename,
		"status":      res.Status,
		"tokens":      res.Tokens,
		"chunks":      res.Chunks,
		"output_path": res.OutputPath,
		"elapsed_ms":  res.Elapsed.Milliseconds(),
		"markdown":    res.Markdown,
	})
}

// receiveUpload stores the multipart "file" field in a temp file keeping its
// extension, so the extractor registry can pick a parser. On failure it has
// already written the error response.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (path, filename string, ok bool) {
	limit := s.cfg.MaxUploadBytes
	// extra 1MB for form overhead
	r.Body = http.MaxBytesReader(w, r.Body, limit+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", "", false
	}

	path, err = spool(file, filepath.Ext(filename), limit)
	if errors.Is(err, errTooLarge) {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", limit), http.StatusRequestEntityTooLarge)
		return "", "", false
	}
	if err != nil {
		s.log.Error("upload spool failed", "file", filename, "error", err)
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", "", false
	}
	return path, filename, true
}

func spool(src io.Reader, ext string, limit int64) (string, error) {
	path := filepath.Join(os.TempDir(), "docsum-"+uuid.NewString()+strings.ToLower(ext))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, io.LimitReader(src, limit+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > limit {
		err = errTooLarge
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
