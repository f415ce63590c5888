package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "railbook/internal/config"
	"railbook/internal/db"
	router "railbook/internal/http"
	"railbook/internal/http/handlers"
	"railbook/internal/ledger"
	"railbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := db.EnsureSchema(conn); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}

	// Seat inventory lives in memory; sold seats are reloaded from storage
	// so a restart cannot double-sell.
	seats := ledger.NewSeatLedger(env.HoldWindow)
	sold, err := repositories.BookingRepository{}.SoldSeatKeys()
	if err != nil {
		log.Fatalf("seat ledger warm-up failed: %v", err)
	}
	seats.Warm(sold)

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	seats.StartReaper(reaperCtx, time.Minute)

	handlers.SetLedger(seats)

	// Router (Gin engine)
	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
