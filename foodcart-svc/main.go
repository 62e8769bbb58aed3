package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"foodcart/config"
	httpapi "foodcart/foodcart-svc/internal/api/http"
	"foodcart/foodcart-svc/internal/geocoder"
	"foodcart/foodcart-svc/internal/places"
	"foodcart/foodcart-svc/internal/service"
	"foodcart/foodcart-svc/internal/storage"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("foodcart-svc failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "foodcart-svc",
		Usage: "food delivery orders with nearest restaurant ranking",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, overrides HTTP_ADDR"},
					&cli.BoolFlag{Name: "with-warmer", Usage: "also consume order events and warm the place cache"},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrateDB,
			},
			{
				Name:   "warm-places",
				Usage:  "consume order events and geocode their addresses ahead of time",
				Action: warmPlaces,
			},
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.SetupLogger(cfg)
	if cfg.GeocoderAPIKey == "" {
		log.Warn("YANDEX_GEOCODER_API_KEY is not set, every geocoding request will fail")
	}
	return cfg, nil
}

func newRanker(cfg *config.Config, repo *storage.PostgresRepository, rdb *redis.Client) *service.Ranker {
	client := geocoder.NewClient(geocoder.Config{
		APIKey:  cfg.GeocoderAPIKey,
		BaseURL: cfg.GeocoderURL,
		Timeout: cfg.GeocoderTimeout,
	}, nil)

	cache := places.NewCache(repo, client,
		places.WithMissCache(storage.NewRedisCache(rdb, cfg.PlaceMissTTL)),
		places.WithConcurrency(cfg.GeocoderConcurrency),
	)
	return service.NewRanker(repo, cache)
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	if err := storage.Migrate(db.DB); err != nil {
		return err
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg, cfg.OrdersTopic)
	defer writer.Close()

	qr, err := service.NewOrderQRCode(cfg.PublicURL, cfg.QRSize, cfg.QRRecovery)
	if err != nil {
		return err
	}

	repo := storage.NewPostgresRepository(db)
	ranker := newRanker(cfg, repo, rdb)
	orders := service.NewOrderService(
		repo,
		service.NewOrderValidator(repo, cfg.PhoneRegion),
		ranker,
		storage.NewKafkaPublisher(writer),
		qr,
	)
	catalog := service.NewCatalogService(repo, repo, cfg.MediaURL)
	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(httpapi.NewHandler(catalog, orders)))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.HTTPAddr).Info("foodcart-svc starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if c.Bool("with-warmer") {
		reader := config.NewKafkaReader(cfg, cfg.OrdersTopic, cfg.WarmerGroupID)
		defer reader.Close()
		g.Go(func() error {
			service.NewConsumer(reader, repo, ranker).Start(gctx)
			return nil
		})
	}

	return g.Wait()
}

func migrateDB(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	if err := storage.Migrate(db.DB); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func warmPlaces(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg, cfg.OrdersTopic, cfg.WarmerGroupID)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := storage.NewPostgresRepository(db)
	service.NewConsumer(reader, repo, newRanker(cfg, repo, rdb)).Start(ctx)
	return nil
}
