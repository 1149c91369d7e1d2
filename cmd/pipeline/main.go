package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flf2ko/fasthttp-prometheus"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/pricebars/pkg/pipeline"
	"github.com/pricebars/pkg/provider"
	"github.com/pricebars/pkg/scheduler"
	"github.com/pricebars/pkg/service"
	"github.com/pricebars/pkg/storage"
)

var (
	serviceVersion = "dev"
	methodError    = []string{"method", "error"}
	stateError     = []string{"state", "error"}
)

type configuration struct {
	Port               string `envconfig:"PORT" required:"true" default:"8080"`
	MaxRequestBodySize int    `envconfig:"MAX_REQUEST_BODY_SIZE" default:"1048576"` // 1 MB

	MetricsNamespace    string `envconfig:"METRICS_NAMESPACE" default:"pricebars"`
	MetricsSubsystem    string `envconfig:"METRICS_SUBSYSTEM" default:"pipeline"`
	MetricsNameCount    string `envconfig:"METRICS_NAME_COUNT" default:"request_count"`
	MetricsNameDuration string `envconfig:"METRICS_NAME_DURATION" default:"request_duration"`
	MetricsHelpCount    string `envconfig:"METRICS_HELP_COUNT" default:"Request count"`
	MetricsHelpDuration string `envconfig:"METRICS_HELP_DURATION" default:"Request duration"`

	WriteTimeout int `envconfig:"WRITE_TIMEOUT" default:"30"`

	URIPathSave  string `envconfig:"URI_PATH_SAVE" default:"/api/save"`
	URIPathSaved string `envconfig:"URI_PATH_SAVED" default:"/api/saved"`
	OwnerHeader  string `envconfig:"OWNER_HEADER" default:"X-Owner-ID"`

	ProviderURL      string        `envconfig:"PROVIDER_URL" default:"https://api.polygon.io"`
	ProviderAPIKey   string        `envconfig:"PROVIDER_API_KEY" required:"true"`
	ProviderTimeout  time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`
	ProviderMaxPages int           `envconfig:"PROVIDER_MAX_PAGES" default:"10"`

	PipelineTimeout time.Duration `envconfig:"PIPELINE_TIMEOUT" default:"2m"`
	PipelineWorkers int           `envconfig:"PIPELINE_WORKERS" default:"4"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	ScheduleFile    string        `envconfig:"SCHEDULE_FILE"`
	ScheduleOnStart bool          `envconfig:"SCHEDULE_ON_START" default:"false"`

	StorageDriver      string            `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SQLitePath         string            `envconfig:"SQLITE_PATH" default:"pricebars.db"`
	MaxOpenConns       int               `envconfig:"STORAGE_MAX_OPEN_CONNS" default:"4"`
	PostgresHost       string            `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort       int               `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser       string            `envconfig:"POSTGRES_USER"`
	PostgresPassword   string            `envconfig:"POSTGRES_PASSWORD"`
	PostgresDatabase   string            `envconfig:"POSTGRES_DATABASE"`
	PostgresSSLMode    string            `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	PostgresParams     map[string]string `envconfig:"POSTGRES_PARAMS"`
	PostgresConnString string            `envconfig:"POSTGRES_DSN"`
}

func main() {
	printVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *printVersion {
		fmt.Println(serviceVersion)
		os.Exit(0)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	_ = level.Info(logger).Log("msg", "initializing", "version", serviceVersion)

	var cfg configuration
	if err := envconfig.Process("", &cfg); err != nil {
		_ = level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}

	store, err := storage.Open(storage.Option{
		Driver:       cfg.StorageDriver,
		SQLitePath:   cfg.SQLitePath,
		MaxOpenConns: cfg.MaxOpenConns,
		Postgres: storage.PostgresOption{
			Host:       cfg.PostgresHost,
			Port:       cfg.PostgresPort,
			User:       cfg.PostgresUser,
			Password:   cfg.PostgresPassword,
			Database:   cfg.PostgresDatabase,
			SSLMode:    cfg.PostgresSSLMode,
			Params:     cfg.PostgresParams,
			ConnString: cfg.PostgresConnString,
		},
	})
	if err != nil {
		_ = level.Error(logger).Log("msg", "failed to open storage", "driver", cfg.StorageDriver, "err", err)
		os.Exit(1)
	}

	reporter := pipeline.NewInstrumentingReporter(
		kitprometheus.NewCounterFrom(prometheus.CounterOpts{
			Namespace: cfg.MetricsNamespace,
			Subsystem: cfg.MetricsSubsystem,
			Name:      "ingestion_count",
			Help:      "Ingestion runs by final state and error kind",
		}, stateError),
		kitprometheus.NewSummaryFrom(prometheus.SummaryOpts{
			Namespace: cfg.MetricsNamespace,
			Subsystem: cfg.MetricsSubsystem,
			Name:      "ingestion_duration",
			Help:      "Ingestion run duration in seconds",
		}, stateError),
		kitprometheus.NewCounterFrom(prometheus.CounterOpts{
			Namespace: cfg.MetricsNamespace,
			Subsystem: cfg.MetricsSubsystem,
			Name:      "bars_inserted",
			Help:      "Price bars written to storage",
		}, nil),
		pipeline.NewLogReporter(logger),
	)

	pool := pipeline.NewPool(cfg.PipelineWorkers)
	orchestrator := pipeline.New(pipeline.Option{
		Fetcher: pipeline.ProviderFetcher(provider.NewFetcher(provider.Option{
			BaseURL:  cfg.ProviderURL,
			APIKey:   cfg.ProviderAPIKey,
			Timeout:  cfg.ProviderTimeout,
			MaxPages: cfg.ProviderMaxPages,
			Logger:   logger,
		})),
		Store:    store,
		Pool:     pool,
		Reporter: reporter,
		Logger:   logger,
		Timeout:  cfg.PipelineTimeout,
	})

	var sched *scheduler.Scheduler
	if cfg.ScheduleFile != "" {
		schedule, err := scheduler.LoadSchedule(cfg.ScheduleFile)
		if err != nil {
			_ = level.Error(logger).Log("msg", "failed to load schedule", "file", cfg.ScheduleFile, "err", err)
			os.Exit(1)
		}
		sched, err = scheduler.New(scheduler.Option{
			Schedule:   schedule,
			Dispatcher: orchestrator,
			Logger:     logger,
		})
		if err != nil {
			_ = level.Error(logger).Log("msg", "failed to create scheduler", "err", err)
			os.Exit(1)
		}
	}

	svc := service.NewService(orchestrator, store)

	svc = service.NewLoggingMiddleware(logger, svc)
	svc = service.NewInstrumentingMiddleware(
		kitprometheus.NewCounterFrom(prometheus.CounterOpts{
			Namespace: cfg.MetricsNamespace,
			Subsystem: cfg.MetricsSubsystem,
			Name:      cfg.MetricsNameCount,
			Help:      cfg.MetricsHelpCount,
		}, methodError),
		kitprometheus.NewSummaryFrom(prometheus.SummaryOpts{
			Namespace: cfg.MetricsNamespace,
			Subsystem: cfg.MetricsSubsystem,
			Name:      cfg.MetricsNameDuration,
			Help:      cfg.MetricsHelpDuration,
		}, methodError),
		svc,
	)

	errorProcessor := service.NewErrorProcessor(http.StatusInternalServerError, "internal error")
	saveTransport := service.NewSaveTransport(service.NewError, cfg.OwnerHeader)
	queryTransport := service.NewQueryTransport(service.NewError, cfg.OwnerHeader)

	router := service.MakeFastHTTPRouter(
		[]*service.HandlerSettings{
			{
				Path:    cfg.URIPathSave,
				Method:  http.MethodPost,
				Handler: service.NewSaveServer(saveTransport, svc, errorProcessor),
			},
			{
				Path:    cfg.URIPathSaved,
				Method:  http.MethodGet,
				Handler: service.NewQueryServer(queryTransport, svc, errorProcessor),
			},
		})

	router.Handle("GET", "/debug/pprof/", fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Index))
	router.Handle("GET", "/debug/pprof/profile", fasthttpadaptor.NewFastHTTPHandlerFunc(pprof.Profile))

	p := fasthttpprometheus.NewPrometheus(cfg.MetricsSubsystem)
	fasthttpServer := &fasthttp.Server{
		Handler:            p.WrapHandler(router),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		WriteTimeout:       time.Duration(cfg.WriteTimeout) * time.Second,
	}

	go func() {
		fasthttpServer.ReadTimeout = time.Second * 1
		_ = level.Info(logger).Log("msg", "starting http server", "port", cfg.Port)
		if err := fasthttpServer.ListenAndServe(":" + cfg.Port); err != nil {
			_ = level.Error(logger).Log("msg", "server run failure", "err", err)
			os.Exit(1)
		}
	}()

	if sched != nil {
		sched.Start()
		if cfg.ScheduleOnStart {
			sched.RunNow()
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)

	defer func(sig os.Signal) {
		_ = level.Info(logger).Log("msg", "received signal, exiting", "signal", sig)
		if err := fasthttpServer.Shutdown(); err != nil {
			_ = level.Error(logger).Log("msg", "server shutdown failure", "err", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if sched != nil {
			if err := sched.Stop(ctx); err != nil {
				_ = level.Error(logger).Log("msg", "scheduler shutdown failure", "err", err)
			}
		}
		if err := orchestrator.Close(ctx); err != nil {
			_ = level.Error(logger).Log("msg", "in-flight ingestions cancelled", "err", err)
		}
		pool.Close()
		if err := store.Close(); err != nil {
			_ = level.Error(logger).Log("msg", "storage close failure", "err", err)
		}

		_ = level.Info(logger).Log("msg", "goodbye")
	}(<-c)
}
