package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/payplan/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogging configures gin mode and the global logger to write to output.
func setupLogging(output io.Writer) {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: output}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// dataDir returns the directory the database is stored in.
func dataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}

	return "data"
}

// connect creates the data directory if needed and connects to the database.
// The returned function closes the connection.
func connect() (func(), error) {
	dir := dataDir()
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return func() {}, fmt.Errorf("creating data directory: %w", err)
	}

	err = models.Connect(filepath.Join(dir, "payplan.db"))
	if err != nil {
		return func() {}, err
	}

	return func() {
		sqlDB, err := models.DB.DB()
		if err != nil {
			log.Error().Err(err).Msg("Database")
			return
		}

		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Database")
		}
	}, nil
}
