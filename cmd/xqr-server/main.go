// Command xqr-server runs the standalone web editing UI and JSON API.
package main

import (
	"log"

	"xqr/internal/config"
	"xqr/internal/server"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting xqr server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
