package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/movie-watchlist/internal/auth/http"
	authservice "github.com/AlibekovAA/movie-watchlist/internal/auth/service"
	"github.com/AlibekovAA/movie-watchlist/internal/common/bootstrap"
	"github.com/AlibekovAA/movie-watchlist/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/movie-watchlist/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/movie-watchlist/internal/common/http"
	srv "github.com/AlibekovAA/movie-watchlist/internal/common/server"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/events"
	moviehttp "github.com/AlibekovAA/movie-watchlist/internal/movie/http"
	movieservice "github.com/AlibekovAA/movie-watchlist/internal/movie/service"
)

const serviceName = "api"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.NewApp(ctx, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start %s: %v\n", serviceName, err)
		os.Exit(1)
	}
	defer app.Close()

	log := app.Log
	cfg := app.Config

	realClock := clock.NewRealClock()
	issuer := authservice.NewTokenIssuer(cfg.JWTSecret, commoncrypto.NewUUIDGenerator(), cfg.TokenTTL, realClock)
	authService := authservice.NewAuthService(app.UserRepo, commoncrypto.NewBcryptHasher(), issuer, log)

	hub := events.NewHub(log)
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go hub.Run(hubCtx)

	movieService := movieservice.NewMovieService(app.MovieRepo, hub, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler())
	mux.Handle("/metrics", promhttp.Handler())
	authhttp.Register(mux, authService, issuer.Verifier(), cfg.RequestTimeout, log)
	moviehttp.Register(mux, movieService, events.NewHandler(hub, issuer.Verifier(), cfg.CORSOrigin, log), cfg.RequestTimeout, log)

	handler := commonhttp.BuildBaseHandler(log, cfg.CORSOrigin, mux)
	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler, log)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("%s service: stopping watchlist event hub", serviceName)
			stopHub()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, serviceName, shutdownHooks)
}
