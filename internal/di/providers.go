package di

import (
	"context"
	"fmt"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	"github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
	"github.com/yigiitcoskun/us-economic-insights/internal/handler/api"
	internalrepo "github.com/yigiitcoskun/us-economic-insights/internal/repository"
	icache "github.com/yigiitcoskun/us-economic-insights/internal/service/cache"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/fred"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/ratelimit"
	"github.com/yigiitcoskun/us-economic-insights/internal/services/analytics"
	"github.com/yigiitcoskun/us-economic-insights/internal/usecase"
	pkgch "github.com/yigiitcoskun/us-economic-insights/pkg/clickhouse"
	"github.com/yigiitcoskun/us-economic-insights/pkg/config"
	xhttp "github.com/yigiitcoskun/us-economic-insights/pkg/http"
	pkgkafka "github.com/yigiitcoskun/us-economic-insights/pkg/kafka"
	applogger "github.com/yigiitcoskun/us-economic-insights/pkg/logger"
	"github.com/yigiitcoskun/us-economic-insights/pkg/metrics"
	"github.com/yigiitcoskun/us-economic-insights/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache picks the response cache: memory in front of Redis when Redis is
// configured, memory only otherwise, nothing when caching is disabled.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if !cfg.Cache.Enabled {
		return icache.Nop{}
	}
	if cfg.Cache.Redis.Enabled {
		redis := icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		return icache.NewLayeredCache(redis, time.Minute)
	}
	return icache.NewTTLCache()
}

// ProvideCatalog returns the configured indicators, or the built-in 14-code
// catalog when analysis.indicators is empty.
func ProvideCatalog(cfg *config.Config) models.Catalog {
	if len(cfg.Analysis.Indicators) == 0 {
		return models.DefaultCatalog()
	}
	entries := make([]models.Indicator, 0, len(cfg.Analysis.Indicators))
	for _, ind := range cfg.Analysis.Indicators {
		entries = append(entries, models.Indicator{
			Code:     ind.Code,
			Label:    ind.Label,
			Polarity: models.Polarity(ind.Polarity),
		})
	}
	return models.NewCatalog(entries...)
}

// ProvideFredClient creates the rate limited, breaker guarded FRED client.
func ProvideFredClient(cfg *config.Config, catalog models.Catalog, c icache.BytesCache, m repository.Metrics, l *applogger.Logger) *fred.Client {
	return fred.NewFromConfig(cfg,
		fred.WithCache(c, cfg.Cache.TTL),
		fred.WithCatalog(catalog),
		fred.WithMetrics(m),
		fred.WithLogger(l),
	)
}

// ProvideSeriesFetcher exposes the FRED client as the use case's data source.
func ProvideSeriesFetcher(c *fred.Client) repository.SeriesFetcher {
	return c
}

// ProvideAnalyzer creates the rule engine over the configured catalog.
func ProvideAnalyzer(cfg *config.Config, catalog models.Catalog, l *applogger.Logger) domsvc.Analyzer {
	e := analytics.NewEngine(catalog,
		analytics.WithSummaryPeriods(cfg.Analysis.SummaryPeriods),
	)
	e.SetLogger(l)
	return e
}

// ProvideClickHouseClient creates a ClickHouse client. Returns nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	chc := cfg.ClickHouse
	client, err := pkgch.NewClient(pkgch.ClientConfig{
		Host:         chc.Host,
		Port:         chc.Port,
		Database:     chc.Database,
		User:         chc.User,
		Password:     chc.Password,
		DialTimeout:  chc.DialTimeout,
		ReadTimeout:  chc.ReadTimeout,
		WriteTimeout: chc.WriteTimeout,
		UseHTTP:      chc.UseHTTP,
		AsyncInsert:  chc.AsyncInsert,
		WaitForAsync: chc.WaitForAsync,
		MaxExecTime:  chc.MaxExecutionTime,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideClickHouseStore creates the run archive and ensures its schema.
func ProvideClickHouseStore(client *pkgch.Client, cfg *config.Config, l *applogger.Logger) (*internalrepo.ClickHouseStore, error) {
	if client == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseStore(client, cfg.ClickHouse.Database)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = client.Close() // cannot continue without schema
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(pkgkafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		RequiredAcks: cfg.Kafka.RequiredAcks,
		Compression:  cfg.Kafka.Compression,
		MaxAttempts:  cfg.Kafka.Producer.MaxAttempts,
		WriteTimeout: cfg.Kafka.Producer.WriteTimeout,
		BatchTimeout: cfg.Kafka.Producer.BatchTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaPublisher creates the run publisher over the producer.
func ProvideKafkaPublisher(producer *pkgkafka.Producer, cfg *config.Config) *internalrepo.KafkaPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideReportSinks collects every enabled sink, file first.
func ProvideReportSinks(cfg *config.Config, store *internalrepo.ClickHouseStore, pub *internalrepo.KafkaPublisher) []repository.ReportSink {
	sinks := []repository.ReportSink{
		internalrepo.NewFileReportSink(cfg.Report.OutputDir, usecase.ReportFileName),
	}
	if store != nil {
		sinks = append(sinks, store)
	}
	if pub != nil {
		sinks = append(sinks, pub)
	}
	return sinks
}

// ProvideAnalysisUseCase creates the analysis use case.
func ProvideAnalysisUseCase(
	cfg *config.Config,
	fetcher repository.SeriesFetcher,
	analyzer domsvc.Analyzer,
	m repository.Metrics,
	l *applogger.Logger,
	sinks []repository.ReportSink,
) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(fetcher, analyzer, m, l,
		usecase.WithSinks(sinks...),
		usecase.WithLookbackDays(cfg.Fred.LookbackDays),
	)
}

// ProvideAnalysisHandler creates the echo handler with its cache, limiter and
// dependency health checks.
func ProvideAnalysisHandler(
	cfg *config.Config,
	uc *usecase.AnalysisUseCase,
	c icache.BytesCache,
	store *internalrepo.ClickHouseStore,
	l *applogger.Logger,
) *api.AnalysisHandler {
	opts := []api.HandlerOption{
		api.WithCache(c, cfg.Server.ReportCacheTTL),
		api.WithRateLimiter(ratelimit.New(cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst)),
	}
	if store != nil {
		opts = append(opts, api.WithHealthCheck("clickhouse", store.Health))
	}
	if lc, ok := c.(*icache.LayeredCache); ok {
		opts = append(opts, api.WithHealthCheck("redis", lc.Ping))
	}
	h := api.NewAnalysisHandler(uc, opts...)
	h.SetLogger(l)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	uc *usecase.AnalysisUseCase,
	h *api.AnalysisHandler,
	c icache.BytesCache,
	chClient *pkgch.Client,
	pub *internalrepo.KafkaPublisher,
) *server.App {
	var resources []server.Resource
	if pub != nil {
		resources = append(resources, server.Resource{Name: "kafka", Close: pub.Close})
	}
	if chClient != nil {
		resources = append(resources, server.Resource{Name: "clickhouse", Close: chClient.Close})
	}
	if r, ok := cacheResource(c); ok {
		resources = append(resources, r)
	}
	return server.New(cfg, l, uc, []xhttp.Handler{h}, resources...)
}

// cacheResource returns the closer for caches that own a connection or a
// background sweeper.
func cacheResource(c icache.BytesCache) (server.Resource, bool) {
	switch cc := c.(type) {
	case *icache.LayeredCache:
		return server.Resource{Name: "redis", Close: cc.Close}, true
	case *icache.TTLCache:
		return server.Resource{Name: "memory cache", Close: cc.Close}, true
	}
	return server.Resource{}, false
}
