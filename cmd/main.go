package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Abedalrahmansd/SSociety-API/config"
	"github.com/Abedalrahmansd/SSociety-API/internal/routers"
	chat_service "github.com/Abedalrahmansd/SSociety-API/internal/use-case/chat-case"
	"github.com/Abedalrahmansd/SSociety-API/internal/websocket"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	// Presence is owned here and torn down with the hub; it is authoritative
	// for this single process only.
	presence := websocket.NewPresence()
	wsHub := websocket.NewHub(presence)
	log.Info().Msg("Websocket hub initialized")

	chatService := chat_service.NewChatService(appState)
	authFunc := websocket.JWTWebSocketAuth(appState.JwtSecret.Public)
	wsHandler := websocket.NewWebSocketHandler(wsHub, authFunc, chatService)
	log.Info().Msg("Websocket handler initialized")

	r := routers.NewRouter(appState, wsHub, wsHandler)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}
	wsHub.Close()
}
