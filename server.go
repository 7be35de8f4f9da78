package railbook

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railbook/itinerary-engine/config"
	"github.com/railbook/itinerary-engine/inventory"
	"github.com/railbook/itinerary-engine/itinerary"
)

var (
	server  *http.Server
	service *itinerary.Service
	holds   *inventory.HoldArena
)

// Setup wires the handlers to a search service and hold arena. Must be
// called before StartServer.
func Setup(svc *itinerary.Service, arena *inventory.HoldArena) {
	service = svc
	holds = arena
}

func StartServer() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth)
	mux.HandleFunc("/api/itineraries", handleItineraries)
	mux.HandleFunc("/api/coach-layout", handleCoachLayout)
	mux.HandleFunc("/api/availability", handleAvailability)
	mux.HandleFunc("/api/fare", handleFare)
	mux.HandleFunc("/api/holds", handleHolds)

	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
