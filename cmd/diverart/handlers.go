package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/mush1e/drunken-diver/internal/config"
	"github.com/mush1e/drunken-diver/internal/converter"
	"github.com/mush1e/drunken-diver/web"
)

type server struct {
	cfg config.Config
}

const multipartMemory = 32 << 20

// options applies the optional width and digest values on top of the
// configured defaults.
func (s *server) options(get func(string) string) (converter.Options, error) {
	opts := s.cfg.Options()
	if v := strings.TrimSpace(get("width")); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w <= 0 {
			return opts, fmt.Errorf("invalid width %q", v)
		}
		opts.Width = w
	}
	if v := strings.TrimSpace(get("digest")); v != "" {
		d, err := converter.ParseDigest(v)
		if err != nil {
			return opts, err
		}
		opts.Digest = d
	}
	return opts, nil
}

func (s *server) uploadPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	web.Upload.Execute(w, map[string]any{"Width": s.cfg.Width, "Digest": s.cfg.Digest.String()})
}

func (s *server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	// Leave room for the multipart framing around the file.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := s.options(r.FormValue)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	jobID, err := converter.StartJob(r, opts)
	if err != nil {
		log.Printf("Upload rejected: %v", err)
		switch {
		case errors.Is(err, converter.ErrTooLarge):
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		case errors.Is(err, http.ErrMissingFile):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	web.Result.Execute(w, jobID)
}

func (s *server) streamHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	jobID := strings.TrimPrefix(r.URL.Path, "/stream/")
	if jobID == "" {
		http.Error(w, "Missing job ID", http.StatusBadRequest)
		return
	}
	converter.StreamJob(w, r.Context(), jobID, s.cfg.StreamInterval)
}

// renderHandler answers with the art for the request body as plain text.
func (s *server) renderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	opts, err := s.options(r.URL.Query().Get)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	rt, err := converter.Render(body, opts)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rt.WriteTo(w)
}
