package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/alimikegami/quadraplay/payment-service/internal/controller"
	circuitbreaker "github.com/alimikegami/quadraplay/payment-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/quadraplay/payment-service/internal/infrastructure/mail"
	"github.com/alimikegami/quadraplay/payment-service/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/alimikegami/quadraplay/payment-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/quadraplay/payment-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/quadraplay/payment-service/internal/middleware"
	"github.com/alimikegami/quadraplay/payment-service/internal/repository"
	"github.com/alimikegami/quadraplay/payment-service/internal/service"
	"github.com/alimikegami/quadraplay/payment-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const reconcileTimeout = 2 * time.Minute

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo

	metrics        *echo.Echo
	registry       *prometheus.Registry
	scheduler      gocron.Scheduler
	producer       *kafka.Producer
	tracerProvider *sdktrace.TracerProvider
}

// ConfigureLogger installs the global zerolog logger at the given level, defaulting to info.
func ConfigureLogger(level string) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = logger
}

// Start wires every component and serves HTTP until the server is shut down.
func (app *App) Start() error {
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
		traceProvider = sdktrace.NewTracerProvider()
	}
	app.tracerProvider = traceProvider

	var publisher service.EventPublisher
	if app.Config.KafkaConfig.BrokerAddress != "" {
		producer, err := kafka.CreateKafkaProducer(app.Config)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to kafka, payment events are disabled")
		} else {
			app.producer = producer
			publisher = producer
		}
	}

	cb := circuitbreaker.CreateCircuitBreaker("midtrans")
	gateway := paymentgateway.CreateMidtransClient(app.Config, cb)

	mailer := mail.CreateChain(
		mail.CreateSMTPTransport(app.Config.MailConfig),
		mail.CreateSendmailTransport(app.Config.MailConfig.SendmailPath),
	)

	repo := repository.CreatePaymentRepository(app.DB)
	paymentSvc := service.CreatePaymentService(repo, gateway, publisher, app.Config)
	notificationSvc := service.CreateNotificationService(mailer, app.Config)

	app.Server = app.newServer(paymentSvc, notificationSvc)

	if err := app.startScheduler(paymentSvc); err != nil {
		return err
	}

	app.startMetricsServer()

	log.Info().Str("port", app.Config.ServicePort).Msg("starting payment service")
	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) newServer(paymentSvc service.PaymentService, notificationSvc service.NotificationService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Pre(localmiddleware.CORS)

	tracer := app.tracerProvider.Tracer(tracing.ServiceName)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Registerer: app.metricsRegistry(),
	}))
	e.Use(localmiddleware.Logger)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "Recover").Bytes("stack", stack).Msg("panic recovered")
			return errors.Join(err, echo.ErrInternalServerError)
		},
	}))

	g := e.Group("/api/v1")

	controller.CreatePaymentController(g, paymentSvc)
	controller.CreateRedirectController(g, app.Config)

	var guards []echo.MiddlewareFunc
	if app.Config.NotificationJWT != "" {
		guards = append(guards, localmiddleware.JWTAuth(app.Config.NotificationJWT))
	}
	controller.CreateNotificationController(g, notificationSvc, guards...)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	return e
}

func (app *App) startScheduler(paymentSvc service.PaymentService) error {
	interval := app.Config.ReconcileConfig.Interval
	if interval <= 0 {
		log.Info().Msg("pending payment reconciliation disabled")
		return nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			interval,
		),
		gocron.NewTask(
			func() {
				logger := log.With().Str("job", "reconcile-pending-payments").Logger()
				ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), reconcileTimeout)
				defer cancel()

				if _, err := paymentSvc.ReconcilePendingPayments(ctx); err != nil {
					logger.Error().Err(err).Str("component", "ReconcilePendingPayments").Msg("")
				}
			},
		),
		gocron.WithName("reconcile-pending-payments"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.Start()
	app.scheduler = s

	return nil
}

// metricsRegistry returns the registry owned by this app, so building a second server in the
// same process does not collide on collector registration.
func (app *App) metricsRegistry() *prometheus.Registry {
	if app.registry == nil {
		app.registry = prometheus.NewRegistry()
		app.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return app.registry
}

func (app *App) startMetricsServer() {
	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: app.metricsRegistry(),
	}))

	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start metrics server")
		}
	}()
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error

	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		errList = append(errList, app.metrics.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errList = append(errList, app.scheduler.Shutdown())
	}
	if app.producer != nil {
		errList = append(errList, app.producer.Close())
	}
	if app.tracerProvider != nil {
		errList = append(errList, app.tracerProvider.Shutdown(ctx))
	}

	return errors.Join(errList...)
}
