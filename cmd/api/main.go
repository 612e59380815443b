package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_insights/internal/adapters/charts"
	server "hotel_insights/internal/adapters/http_server"
	"hotel_insights/internal/adapters/observability"
	"hotel_insights/internal/app"
	"hotel_insights/internal/domain"
	"hotel_insights/internal/shared"
	"hotel_insights/internal/storage/csvfile"
	mysqlrepo "hotel_insights/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource := openSource(cfg)
	defer closeSource()

	ds, err := source.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.DataSource).Msg("dataset load failed")
	}
	observability.SetDatasetRecords(ds.Len())

	background, err := server.LoadBackground(cfg.Background)
	if err != nil {
		log.Fatal().Err(err).Msg("background image load failed")
	}
	pages, err := server.NewPages(background)
	if err != nil {
		log.Fatal().Err(err).Msg("page templates failed to parse")
	}

	// http
	srv := server.New(cfg.RequestTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Reports: app.NewReportService(ds),
		Charts:  charts.New(),
		Pages:   pages,
		Limiter: server.NewLimiter(cfg.RenderRPS),
	})

	servers := []*http.Server{{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, observability.NewMetricsServer(cfg.MetricsAddr, reg))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			log.Info().Str("addr", s.Addr).Msg("listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Str("addr", s.Addr).Msg("shutdown incomplete")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("stopped")
}

// openSource picks the dataset backend from DATA_SOURCE.
func openSource(cfg shared.Config) (domain.DatasetSource, func()) {
	if cfg.DataSource != shared.SourceMySQL {
		return csvfile.New(cfg.DataFile), func() {}
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	return mysqlrepo.NewSource(mysqlrepo.New(db)), func() { _ = db.Close() }
}
