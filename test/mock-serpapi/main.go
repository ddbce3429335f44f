package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/worldtrends/explorer/internal/test/fakeserp"
)

func main() {
	key := os.Getenv("SERPAPI_KEY")
	if key == "" {
		key = "test"
	}

	addr := os.Getenv("MOCK_SERPAPI_ADDR")
	if addr == "" {
		addr = ":8089"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           fakeserp.NewHandler(key),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting mock SerpAPI server on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Mock SerpAPI server failed: %v", err)
	}
}
