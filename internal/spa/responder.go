package spa

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
)

// Responder writes files from a static root as HTTP responses.
type Responder struct {
	fsys   fs.FS
	logger *slog.Logger
}

func NewResponder(fsys fs.FS, logger *slog.Logger) *Responder {
	return &Responder{fsys: fsys, logger: logger}
}

// Serve writes the file rel. Conditional and range requests are honoured;
// HEAD gets the GET headers without a body.
func (s *Responder) Serve(w http.ResponseWriter, r *http.Request, rel string) {
	f, err := s.fsys.Open(rel)
	if err != nil {
		s.fail(w, r, rel, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.fail(w, r, rel, err)
		return
	}
	if info.IsDir() {
		s.fail(w, r, rel, fs.ErrNotExist)
		return
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			s.fail(w, r, rel, err)
			return
		}
		content = bytes.NewReader(data)
	}

	w.Header().Set("Content-Type", ContentType(rel))
	http.ServeContent(w, r, rel, info.ModTime(), content)
}

func (s *Responder) fail(w http.ResponseWriter, r *http.Request, rel string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Warn("file not found", "path", r.URL.Path, "file", rel)
		http.Error(w, "404 Not Found", http.StatusNotFound)
	case errors.Is(err, fs.ErrPermission):
		s.logger.Warn("file not readable", "path", r.URL.Path, "file", rel, "error", err)
		http.Error(w, "403 Forbidden", http.StatusForbidden)
	default:
		s.logger.Error("serving file", "path", r.URL.Path, "file", rel, "error", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
	}
}
