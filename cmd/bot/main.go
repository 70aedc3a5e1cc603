package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/bot"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/config"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/infrastructure/cache"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/infrastructure/database"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/infrastructure/exchanges"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/presenter"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/usecase"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	threshold, err := decimal.NewFromString(cfg.Monitor.ThresholdPct)
	if err != nil {
		logger.Error("invalid alert threshold", slog.String("value", cfg.Monitor.ThresholdPct))
		os.Exit(1)
	}

	db, err := database.NewConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	subRepo := database.NewSubscriptionRepository(db)
	alertRepo := database.NewAlertRepository(db)

	// Один http.Client на процесс: общий пул соединений для всех адаптеров
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	defer httpClient.CloseIdleConnections()

	rest := exchanges.NewRESTClient(httpClient)
	sources := usecase.Sources{
		Binance: exchanges.NewBinance(rest),
		Gateio:  exchanges.NewGateio(rest),
		Bybit:   exchanges.NewBybit(rest),
		Kucoin:  exchanges.NewKucoin(rest),
		OKX:     exchanges.NewOKX(rest),
		Huobi:   exchanges.NewHuobi(rest),
		MEXC:    exchanges.NewMEXC(rest),
		Uniswap: exchanges.NewUniswap(rest),
	}

	aggregator := usecase.NewAggregator(sources, logger)
	screener := usecase.NewScreenerService(aggregator, logger)
	symbols := domain.DefaultSymbols()

	var throttle domain.AlertThrottle
	if cfg.Redis.Enabled {
		redisThrottle := cache.NewAlertThrottle(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisThrottle.Close()
		throttle = redisThrottle
	}

	tgBot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error("failed to init telegram bot", slog.String("error", err.Error()))
		os.Exit(1)
	}
	tgBot.Debug = false
	logger.Info("Telegram bot authorized", slog.String("username", tgBot.Self.UserName))

	notifier := bot.NewNotifier(tgBot, logger)

	manager := worker.NewManager(
		screener,
		notifier,
		subRepo,
		alertRepo,
		throttle,
		presenter.FormatReport,
		symbols,
		worker.Options{
			Interval:     cfg.Monitor.Interval,
			InitialDelay: cfg.Monitor.InitialDelay,
			Threshold:    threshold,
			Cooldown:     cfg.Monitor.AlertCooldown,
		},
		logger,
	)

	botHandler := bot.NewHandler(tgBot, screener, manager, symbols, threshold, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Чаты с активной подпиской продолжают мониториться после рестарта
	if err := manager.Restore(ctx); err != nil {
		logger.Error("failed to restore subscriptions", slog.String("error", err.Error()))
	}

	logger.Info("Starting bot...",
		slog.String("env", cfg.Env),
		slog.Int("symbols", len(symbols)))

	go botHandler.Start(ctx)

	<-ctx.Done()
	logger.Info("Bot stopped gracefully")
}
