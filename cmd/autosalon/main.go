package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iurnickita/autosalon/internal/auth"
	"github.com/iurnickita/autosalon/internal/cache"
	"github.com/iurnickita/autosalon/internal/config"
	"github.com/iurnickita/autosalon/internal/deal"
	"github.com/iurnickita/autosalon/internal/handler"
	"github.com/iurnickita/autosalon/internal/logger"
	"github.com/iurnickita/autosalon/internal/notify"
	"github.com/iurnickita/autosalon/internal/scheduler"
	"github.com/iurnickita/autosalon/internal/service"
	"github.com/iurnickita/autosalon/internal/service/mailclient"
	"github.com/iurnickita/autosalon/internal/store"
	"github.com/iurnickita/autosalon/internal/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.GetConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		return err
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	if cfg.Token.DefaultSecrets {
		zaplog.Warn("token secrets are not set, using built-in keys",
			zap.String("env", "SECRET_KEY_OF_ACCESS_TOKEN, SECRET_KEY_OF_REFRESH_TOKEN"))
	}

	store, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	// почта: без адреса шлюза письма только логируются
	var mail mailclient.MailClient
	if cfg.Service.MailAddr != "" {
		mail = mailclient.NewMailClient(cfg.Service.MailAddr)
	}
	notifier := notify.NewNotifier(cfg.Service.MailFrom, mail, zaplog)

	// кэш статистики: без адреса redis кэш выключен
	var rdb *redis.Client
	if cfg.Cache.RedisAddr != "" {
		rdb, err = cache.ConnectRedis(cfg.Cache)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}
	stats := cache.NewCachedStats(store, rdb, cfg.Cache.TTL, zaplog)

	deal := deal.NewDeal(cfg.Deal, store, zaplog)
	service := service.NewService(store, deal, stats, notifier, zaplog)
	auth := auth.NewAuth(store, token.NewToken(cfg.Token), notifier, zaplog)

	sched := scheduler.NewScheduler(zaplog)
	sched.Add("recheck supplier discounts", cfg.Scheduler.RecheckInterval, func(ctx context.Context) error {
		reports, err := service.DealRecheck(ctx, 0)
		for _, r := range reports {
			zaplog.Info("supplier discounts rechecked",
				zap.Int64("autosalon", r.AutoSalonID),
				zap.Int64s("kept", r.Kept),
				zap.Int64s("removed", r.Removed),
			)
		}
		return err
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Serve(ctx, cfg.Handler, auth, service, zaplog)
	})
	g.Go(func() error {
		return sched.Run(ctx)
	})
	g.Go(func() error {
		return notifier.Run(ctx)
	})

	err = g.Wait()
	zaplog.Info("stopped", zap.Error(err))
	return err
}
