package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Ramsey-B/clover/config"
	contractorrepo "github.com/Ramsey-B/clover/internal/repositories/contractor"
	eventrepo "github.com/Ramsey-B/clover/internal/repositories/event"
	manufacturerrepo "github.com/Ramsey-B/clover/internal/repositories/manufacturer"
	partnerrepo "github.com/Ramsey-B/clover/internal/repositories/partner"
	partnermatchrepo "github.com/Ramsey-B/clover/internal/repositories/partnermatch"
	podcastrepo "github.com/Ramsey-B/clover/internal/repositories/podcast"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/middleware"
	"github.com/Ramsey-B/clover/pkg/outcome"
	"github.com/Ramsey-B/clover/pkg/processor"
	"github.com/Ramsey-B/clover/pkg/routes/health"
	matchingroutes "github.com/Ramsey-B/clover/pkg/routes/matching"
	"github.com/Ramsey-B/clover/pkg/startup"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/Ramsey-B/clover/pkg/tracing/exporters"
)

const serviceVersion = "1.0.0"

// Server owns the service lifecycle: tracing, database, Kafka, and the HTTP
// API are brought up through startup dependencies and unwound in reverse.
type Server struct {
	cfg    *config.Config
	logger ectologger.Logger

	echo     *echo.Echo
	db       database.DB
	producer *kafka.Producer
	consumer *kafka.Consumer
	checker  *health.Checker
	boot     *startup.Startup

	matcher     *matching.Service
	contractors *contractorrepo.Repository
	matches     *partnermatchrepo.Repository

	shutdownTracing func(context.Context) error
}

func New(cfg *config.Config, logger ectologger.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
	}
}

// Run initializes tracing and starts every dependency. It returns once the
// service is accepting traffic.
func (s *Server) Run(ctx context.Context) error {
	exporter := sdktrace.SpanExporter(&exporters.ConsoleExporter{})
	if s.cfg.TracingEnabled {
		otlp, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
			Endpoint: s.cfg.TracingOTLPEndpoint,
			Protocol: s.cfg.TracingOTLPProtocol,
			Insecure: true,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create OTLP exporter")
		}
		exporter = otlp
	}
	s.shutdownTracing = tracing.Init(s.cfg.AppName, exporter)

	s.boot = startup.NewStartup(s.logger, s.cfg.StartupMaxAttempts)
	s.boot.AddDependency(&databaseDependency{server: s})
	s.boot.AddDependency(&httpDependency{server: s})
	if s.cfg.KafkaConsumerEnabled {
		s.boot.AddDependency(&consumerDependency{server: s})
	}

	if err := s.boot.Start(ctx); err != nil {
		return err
	}

	if s.checker != nil {
		s.checker.SetReady(true)
	}
	s.logger.WithField("port", s.cfg.Port).Info("Service started")
	return nil
}

// Stop drains traffic and shuts dependencies down in reverse start order.
func (s *Server) Stop(ctx context.Context) error {
	if s.checker != nil {
		s.checker.SetReady(false)
	}

	var firstErr error
	if s.boot != nil {
		firstErr = s.boot.Stop(ctx)
	}

	if s.shutdownTracing != nil {
		if err := s.shutdownTracing(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type databaseDependency struct {
	server *Server
}

func (d *databaseDependency) GetName() string     { return "database" }
func (d *databaseDependency) DependsOn() []string { return nil }

func (d *databaseDependency) Start(ctx context.Context) error {
	s := d.server
	cfg := s.cfg

	db, err := database.Connect(s.logger, database.PostgresConfig{
		Host:         cfg.DatabaseHost,
		Port:         cfg.DatabasePort,
		User:         cfg.DatabaseUserName,
		Password:     cfg.DatabasePassword,
		Name:         cfg.DatabaseName,
		SSLMode:      cfg.DatabaseSSLMode,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
		MaxIdleConns: cfg.DatabaseMaxIdleConns,
		MaxConnLife:  cfg.DatabaseConnMaxLifetime,
	}, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})
	if err != nil {
		return err
	}
	s.db = db

	s.producer = kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaOutputTopic,
		BatchSize:    cfg.KafkaBatchSize,
		BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: cfg.KafkaRequiredAcks,
		Compression:  cfg.KafkaCompression,
	}, s.logger)
	emitter := outcome.NewEmitter(s.producer, s.logger, cfg.OutcomeEmitTimeout)

	tables := matching.DefaultTables()
	engine := matching.NewEngine(tables, cfg.MatchingEventSoonWindowDays)
	reasons := matching.NewReasonGenerator(tables)

	s.contractors = contractorrepo.NewRepository(db, s.logger)
	s.matches = partnermatchrepo.NewRepository(db, s.logger)
	s.matcher = matching.NewService(
		engine,
		reasons,
		s.contractors,
		partnerrepo.NewRepository(db, s.logger),
		podcastrepo.NewRepository(db, s.logger),
		eventrepo.NewRepository(db, s.logger),
		manufacturerrepo.NewRepository(db, s.logger),
		s.matches,
		emitter,
		matching.ServiceConfig{
			TopPartnerMatches:    cfg.MatchingTopPartnerMatches,
			ManufacturersEnabled: cfg.MatchingManufacturersEnabled,
		},
		s.logger,
	)

	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return errors.Wrap(err, "failed to create DI container")
	}
	if err := ectoinject.RegisterInstance[ectologger.Logger](container, s.logger); err != nil {
		return errors.Wrap(err, "failed to register logger")
	}
	if err := ectoinject.RegisterInstance[*matching.Service](container, s.matcher); err != nil {
		return errors.Wrap(err, "failed to register matching service")
	}
	return nil
}

func (d *databaseDependency) Stop(ctx context.Context) error {
	s := d.server
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close Kafka producer")
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type consumerDependency struct {
	server *Server
}

func (d *consumerDependency) GetName() string     { return "kafka-consumer" }
func (d *consumerDependency) DependsOn() []string { return []string{"database"} }

func (d *consumerDependency) Start(ctx context.Context) error {
	s := d.server

	proc := processor.NewProcessor(s.contractors, s.matcher, s.matches, s.logger)
	s.consumer = kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:       s.cfg.KafkaBrokers,
		Topic:         s.cfg.KafkaInputTopic,
		ConsumerGroup: s.cfg.KafkaConsumerGroup,
	}, s.logger, proc.HandleMessage)

	return s.consumer.Start(ctx)
}

func (d *consumerDependency) Stop(ctx context.Context) error {
	if d.server.consumer != nil {
		return d.server.consumer.Stop()
	}
	return nil
}

type httpDependency struct {
	server *Server
}

func (d *httpDependency) GetName() string { return "http-server" }

func (d *httpDependency) DependsOn() []string {
	// the health checker reports on the consumer, so it must exist first
	if d.server.cfg.KafkaConsumerEnabled {
		return []string{"database", "kafka-consumer"}
	}
	return []string{"database"}
}

func (d *httpDependency) Start(ctx context.Context) error {
	s := d.server
	cfg := s.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(s.logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.HTTPErrorHandler = middleware.Error(s.logger)

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	var kafkaHealth interface{ Health() bool }
	if s.consumer != nil {
		kafkaHealth = s.consumer
	}
	s.checker = health.NewChecker(s.db, kafkaHealth, serviceVersion)
	s.checker.RegisterRoutes(e)

	matchingroutes.Register(e.Group("/api/v1/contractors"))

	s.echo = e

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()
	return nil
}

func (d *httpDependency) Stop(ctx context.Context) error {
	if d.server.echo != nil {
		return d.server.echo.Shutdown(ctx)
	}
	return nil
}
