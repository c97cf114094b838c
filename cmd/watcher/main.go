package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/config"
	"go-recruitart-client/internal/dedup"
	"go-recruitart-client/internal/filter"
	"go-recruitart-client/internal/guard"
	"go-recruitart-client/internal/notifications"
	"go-recruitart-client/internal/reporter"
	"go-recruitart-client/internal/session"
	pkglog "go-recruitart-client/pkg/log"
)

func main() {
	pkglog.Setup()

	//load config
	cfg := config.MustLoad()
	log.Info().Strs("keywords", cfg.Keywords).Msg("🔧 Config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//restore the session and make sure we are allowed in
	client := api.New(cfg.APIBaseURL, nil)
	sess := session.NewManager(client, session.NewStore(cfg.TokenPath))
	sess.Resolve(ctx)

	switch guard.ForSession(sess) {
	case guard.RenderView:
		log.Info().Str("user", sess.Identity().DisplayName()).Msg("✅ Authenticated")
	default:
		log.Fatal().Msg("❌ No valid session. Run the auth command and log in first.")
	}

	//telegram reporter is optional
	var rep notifications.Reporter
	if cfg.ReporterEnabled() {
		tg, err := reporter.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to init Telegram reporter")
		}
		rep = tg
		log.Info().Msg("🤖 Telegram reporter initialized")
	} else {
		log.Info().Msg("📴 Telegram not configured, running log-only")
	}

	matcher := filter.NewMatcher(cfg.Keywords, cfg.Locations)
	seen := dedup.NewSeenCache(cfg.CachePath, "seen_items.json")

	log.Info().Dur("interval", cfg.PollInterval).Msg("🚀 Starting Recruit Art watcher...")
	watcher := notifications.NewWatcher(client, matcher, seen, rep, cfg.PollInterval)
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("❌ Watcher stopped")
	}
	log.Info().Msg("👋 Watcher shut down")
}
