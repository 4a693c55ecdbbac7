package main

import (
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/alimikegami/quadraplay/payment-service/internal/app"
	"github.com/alimikegami/quadraplay/payment-service/internal/infrastructure/database/postgres"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()
	app.ConfigureLogger(config.LogLevel)

	db, err := postgres.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info().Msg("shutting down")
		if err := server.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
