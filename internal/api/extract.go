package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

const maxUploadBytes = 10 << 20

// extract pulls plain text out of an uploaded file for use as breakdown
// context. Only text-like files are supported; an upload that yields no
// text is a failure, not an empty success.
func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".txt", ".md", ".text":
	default:
		writeError(w, http.StatusBadRequest, "unsupported file type; upload a plain-text file")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read upload: "+err.Error())
		return
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		writeError(w, http.StatusUnprocessableEntity, "no text could be extracted")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"text":      text,
		"fileName":  header.Filename,
		"charCount": len(text),
	})
}
