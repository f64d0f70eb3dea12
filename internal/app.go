package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	genai_adapter "property-service/internal/adapters/genai"
	geocoder_adapter "property-service/internal/adapters/geocoder"
	logger_adapter "property-service/internal/adapters/logger"
	"property-service/internal/adapters/metrics"
	postgres_adapter "property-service/internal/adapters/postgres"
	rabbitmq_adapter "property-service/internal/adapters/rabbitmq"
	"property-service/internal/adapters/rest"
	"property-service/internal/adapters/web"
	"property-service/internal/configs"
	"property-service/internal/constants"
	"property-service/internal/core/port"
	"property-service/internal/core/usecase"
	fluentlogger "property-service/pkg/fluent_logger"
	"property-service/pkg/postgres"
	"property-service/pkg/rabbitmq/rabbitmq_common"
	"property-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	redisClient  *goredis.Client
	connManager  *rabbitmq_common.ConnectionManager
	publisher    *rabbitmq_producer.Publisher
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewApp создает новый экземпляр приложения
func NewApp(envPath string) (*App, error) {
	appConfig, err := configs.LoadConfig(envPath)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := newBaseLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}
	// при ошибке инициализации закрываем то, что уже успели открыть
	ok := false
	defer func() {
		if !ok {
			application.close()
		}
	}()

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    int32(appConfig.Database.MaxConns),
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	application.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	if appConfig.Database.AutoMigrate {
		if err := postgres_adapter.RunMigrations(context.Background(), dbPool, baseLogger); err != nil {
			appLogger.Error("Failed to apply migrations", err, nil)
			return nil, err
		}
	}

	propertyRepo, err := postgres_adapter.NewPostgresPropertyRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres property repository", err, nil)
		return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
	}

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	geocoderMetrics := metrics.NewGeocoderMetrics(registry)
	generationMetrics := metrics.NewGenerationMetrics(registry)

	geocoder, err := application.newGeocoder(geocoderMetrics)
	if err != nil {
		return nil, err
	}

	// nil-интерфейс: use case'ы генерации ответят ErrGeneratorDisabled
	var generator port.TextGeneratorPort
	if appConfig.GenAI.Enabled() {
		gemini, err := genai_adapter.NewGeminiTextGenerator(context.Background(), genai_adapter.Config{
			APIKey:  appConfig.GenAI.APIKey,
			Model:   appConfig.GenAI.Model,
			Timeout: appConfig.GenAI.Timeout,
		}, generationMetrics)
		if err != nil {
			appLogger.Error("Failed to create GenAI text generator", err, nil)
			return nil, err
		}
		generator = gemini
		appLogger.Info("GenAI text generator initialized.", port.Fields{"model": appConfig.GenAI.Model})
	}

	events, err := application.newEventsPublisher(baseLogger)
	if err != nil {
		return nil, err
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// инициализация use-cases
	addPropertyUseCase := usecase.NewAddPropertyUseCase(propertyRepo, events)
	getAllPropertiesUseCase := usecase.NewGetAllPropertiesUseCase(propertyRepo, geocoder, appConfig.Geocoder.Fanout)
	getPropertyByIDUseCase := usecase.NewGetPropertyByIDUseCase(propertyRepo)
	getPropertiesByOwnerUseCase := usecase.NewGetPropertiesByOwnerUseCase(propertyRepo)
	getPropertiesByIDsUseCase := usecase.NewGetPropertiesByIDsUseCase(propertyRepo)
	updatePropertyUseCase := usecase.NewUpdatePropertyUseCase(propertyRepo, events)
	deletePropertyUseCase := usecase.NewDeletePropertyUseCase(propertyRepo, events)
	getAnswerUseCase := usecase.NewGetAnswerUseCase(generator)
	getDescriptionUseCase := usecase.NewGetDescriptionUseCase(generator)
	getComparisonUseCase := usecase.NewGetComparisonUseCase(generator)
	appLogger.Info("All use cases initialized.", nil)

	frontend, err := web.NewFrontendHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to create frontend handler: %w", err)
	}

	router := rest.NewRouter(rest.RouterConfig{
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		HTTPMetrics:        httpMetrics,
		MetricsHandler:     metrics.Handler(registry),
		Frontend:           frontend,
	}, rest.Handlers{
		Property: rest.NewPropertyHandler(
			addPropertyUseCase,
			getAllPropertiesUseCase,
			getPropertyByIDUseCase,
			getPropertiesByOwnerUseCase,
			getPropertiesByIDsUseCase,
			updatePropertyUseCase,
			deletePropertyUseCase,
		),
		Generation: rest.NewGenerationHandler(getAnswerUseCase, getDescriptionUseCase, getComparisonUseCase),
		Health:     rest.NewHealthHandler(propertyRepo),
	}, baseLogger)

	application.apiServer = rest.NewServer(appConfig.Rest.PORT, router, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	ok = true
	return application, nil
}

// newGeocoder собирает Nominatim-клиент и, если задан REDIS_URL, кэш перед ним
func (a *App) newGeocoder(m *metrics.GeocoderMetrics) (port.GeocoderPort, error) {
	cfg := a.config.Geocoder
	client, err := geocoder_adapter.NewNominatimClient(geocoder_adapter.ClientConfig{
		BaseURL:   cfg.URL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		RPS:       cfg.RPS,
	}, m)
	if err != nil {
		a.logger.Error("Failed to create geocoder client", err, nil)
		return nil, err
	}

	if a.config.Redis.URL == "" {
		a.logger.Info("Geocoder initialized without cache.", port.Fields{"url": cfg.URL})
		return client, nil
	}

	opts, err := goredis.ParseURL(a.config.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	a.redisClient = goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := a.redisClient.Ping(pingCtx).Err(); err != nil {
		// кэш необязателен, при ошибках Redis запросы идут в геокодер напрямую
		a.logger.Warn("Redis is not reachable, geocoder cache will be bypassed until it recovers", port.Fields{"error": err.Error()})
	}

	a.logger.Info("Geocoder initialized with Redis cache.", port.Fields{"url": cfg.URL, "ttl": cfg.CacheTTL.String()})
	return geocoder_adapter.NewCachedGeocoder(a.redisClient, client, cfg.CacheTTL, m), nil
}

// newEventsPublisher подключается к RabbitMQ или возвращает noop
func (a *App) newEventsPublisher(baseLogger port.LoggerPort) (port.PropertyEventsPort, error) {
	if !a.config.RabbitMQ.Enabled {
		a.logger.Info("RabbitMQ is disabled, property events will not be published.", nil)
		return rabbitmq_adapter.NoopPropertyEvents{}, nil
	}

	bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	connManager, err := rabbitmq_common.NewConnectionManager(a.config.RabbitMQ.URL, bridge)
	if err != nil {
		a.logger.Error("Failed to connect to RabbitMQ", err, nil)
		return nil, fmt.Errorf("failed to create rabbitmq connection manager: %w", err)
	}
	a.connManager = connManager

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             constants.PropertyExchange,
		ExchangeType:             constants.PropertyExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   bridge,
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create RabbitMQ publisher", err, nil)
		return nil, fmt.Errorf("failed to create rabbitmq publisher: %w", err)
	}
	a.publisher = publisher

	events, err := rabbitmq_adapter.NewRabbitMQPropertyEventsAdapter(publisher)
	if err != nil {
		return nil, err
	}
	a.logger.Info("RabbitMQ property events publisher initialized.", port.Fields{"exchange": constants.PropertyExchange})
	return events, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if a.apiServer != nil {
			if err := a.apiServer.Stop(ctx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.close()
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	// Ожидание сигнала на завершение или ошибки сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// close освобождает внешние ресурсы в порядке, обратном созданию
func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// Migrate применяет миграции схемы и завершается
func Migrate(envPath string) error {
	appConfig, err := configs.LoadConfig(envPath)
	if err != nil {
		return fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := newBaseLogger(appConfig)
	if err != nil {
		return err
	}
	if fluentClient != nil {
		defer fluentClient.Close()
	}

	ctx := context.Background()
	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL, MaxConns: 2})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbPool.Close()

	return postgres_adapter.RunMigrations(ctx, dbPool, baseLogger)
}

// newBaseLogger собирает stdout и, при включенном Fluent Bit, fluent логгер в один
func newBaseLogger(appConfig *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}
