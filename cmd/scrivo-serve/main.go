package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"scrivo/internal/adapters/httpd"
	"scrivo/internal/config"
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	contentDir := flag.String("content-dir", config.ContentDir(), "directory holding the post Markdown files")
	flag.Parse()

	handler := httpd.NewHandler(*contentDir)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("scrivo-serve: serving %s on %s", *contentDir, *addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("scrivo-serve: %v", err)
	}
}
