package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.isProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerPath))
	if err != nil {
		logger.Fatal("could not open session store", zap.Error(err))
	}
	defer db.Close()

	app := newApp(
		newSessionStore(db, logger),
		newAirportClient(cfg.AviasalesToken, logger),
		newFlightClient(cfg.AviasalesToken, logger),
		logger,
	)

	b, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(app.defaultHandler))
	if err != nil {
		logger.Fatal("could not create bot", zap.Error(err))
	}

	app.registerHandlers(b)

	logger.Info("bot started")
	b.Start(ctx)
	logger.Info("bot stopped")
}
