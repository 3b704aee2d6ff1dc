package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftlog/internal/bot"
	"liftlog/internal/config"
	"liftlog/internal/engine"
	"liftlog/internal/liveness"
	"liftlog/internal/logger"
	"liftlog/internal/repository"
	"liftlog/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

func main() {
	boot := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка загрузки конфигурации")
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("ошибка настройки логов")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка часового пояса")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.Open(ctx, repository.Options{
		Driver:      cfg.StorageDriver,
		StatsDir:    cfg.StatsDir,
		CatalogPath: cfg.CatalogPath,
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.DSN(),
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("ошибка открытия хранилища")
	}
	defer repo.Close()

	if cfg.WatchCatalog {
		if err := repo.WatchCatalog(ctx); err != nil {
			log.Warn().Err(err).Msg("наблюдение за каталогом не запущено")
		}
	}

	sessions := session.NewStore(cfg.SessionTTL)
	if cfg.SessionTTL > 0 {
		sweeper, err := sessions.StartSweeper(cfg.SessionSweep)
		if err != nil {
			log.Fatal().Err(err).Str("spec", cfg.SessionSweep).Msg("ошибка расписания очистки сессий")
		}
		defer sweeper.Stop()
	}

	if cfg.KeepAlive {
		go func() {
			if err := liveness.Serve(ctx, cfg.HTTPAddr, boot.Add(cfg.BootOffset)); err != nil {
				log.Error().Err(err).Msg("эндпоинт liveness остановлен")
			}
		}()
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка подключения к Telegram")
	}
	api.Debug = cfg.BotDebug
	log.Info().Str("bot", api.Self.UserName).Str("storage", cfg.StorageDriver).Msg("бот запущен")

	eng := engine.New(repo.Stats, repo.Catalog, sessions, engine.WithLocation(loc))
	b := bot.New(api, eng, repo.Catalog, bot.Options{CardPath: cfg.CardPath, Workers: cfg.Workers})

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	if err := b.Run(ctx, updates); err != nil {
		log.Error().Err(err).Msg("бот остановлен с ошибкой")
	}
	log.Info().Msg("бот остановлен")
}
