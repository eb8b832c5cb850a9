package main

import (
	"log"
	"net/http"
	"time"

	"github.com/mush1e/drunken-diver/internal/config"
	"github.com/mush1e/drunken-diver/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newMux(cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	log.Printf("Server started on %s (width %d, digest %v)", cfg.Addr, cfg.Width, cfg.Digest)
	log.Fatal(srv.ListenAndServe())
}

func newMux(cfg config.Config) *http.ServeMux {
	s := &server{cfg: cfg}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.uploadPage)
	mux.HandleFunc("/upload", s.uploadHandler)
	mux.HandleFunc("/stream/", s.streamHandler)
	mux.HandleFunc("/render", s.renderHandler)

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	return mux
}
