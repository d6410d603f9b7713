package di

import (
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"QuoteDesk/internal/domain/repository"
	"QuoteDesk/internal/handler/api"
	mid "QuoteDesk/internal/middleware"
	"QuoteDesk/internal/service/polygon"
	"QuoteDesk/internal/service/ratelimit"
	"QuoteDesk/internal/usecase"
	"QuoteDesk/pkg/cache"
	"QuoteDesk/pkg/config"
	xhttp "QuoteDesk/pkg/http"
	pkgkafka "QuoteDesk/pkg/kafka"
	applogger "QuoteDesk/pkg/logger"
	"QuoteDesk/pkg/metrics"
	"QuoteDesk/pkg/server"
)

// ProviderSet is every provider InitializeApp needs.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideMarketData,
	ProvideQuoteAggregator,
	ProvideQuoteHandler,
	ProvideRateLimiter,
	ProvideEventProducer,
	ProvideHTTPServer,
	ProvideApp,
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates a private Prometheus registry with runtime collectors.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideMarketData creates the Polygon REST client.
func ProvideMarketData(cfg *config.Config, m repository.Metrics, l *applogger.Logger) repository.MarketData {
	return polygon.New(cfg.Polygon.BaseURL, cfg.Polygon.Timeout, m, l)
}

// ProvideQuoteAggregator creates the quote summary use case. The API key is
// injected here so the use case never reads the environment.
func ProvideQuoteAggregator(cfg *config.Config, md repository.MarketData, m repository.Metrics, l *applogger.Logger) *usecase.QuoteAggregator {
	if cfg.Polygon.APIKey == "" {
		l.Warn("polygon api key not configured, /api/stock will fail")
	}
	return usecase.NewQuoteAggregator(md, m, cfg.Polygon.APIKey,
		usecase.WithLocation(cfg.Location()),
		usecase.WithLogger(l),
	)
}

func ProvideQuoteHandler(l *applogger.Logger, agg *usecase.QuoteAggregator) *api.QuoteEchoHandler {
	return api.NewQuoteEchoHandler(l, agg)
}

// ProvideRateLimiter builds the configured limiter. A nil limiter disables
// rate limiting.
func ProvideRateLimiter(cfg *config.Config, l *applogger.Logger) (ratelimit.Limiter, func(), error) {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil, func() {}, nil
	}

	switch rl.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Redis.Addr()),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("rate limit redis: %w", err)
		}
		cleanup := func() {
			if err := rc.Close(); err != nil {
				l.Warn("redis close error", applogger.Error(err))
			}
		}
		l.Info("rate limiting via redis",
			applogger.String("addr", cfg.Redis.Addr()),
			applogger.Int("requests", rl.Requests),
			applogger.Duration("window_ms", rl.Window),
		)
		return ratelimit.NewFixedWindow(rc, rl.Requests, rl.Window), cleanup, nil
	default:
		l.Info("rate limiting in memory",
			applogger.Int("requests", rl.Requests),
			applogger.Duration("window_ms", rl.Window),
			applogger.Int("burst", rl.Burst),
		)
		return ratelimit.NewTokenBucket(rl.Requests, rl.Window, rl.Burst), func() {}, nil
	}
}

// ProvideEventProducer creates the Kafka producer for ops events and attaches
// the log collector to it. Returns nil when events are disabled.
func ProvideEventProducer(cfg *config.Config, reg *prometheus.Registry, l *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	ev := cfg.Events
	if !ev.Enabled {
		return nil, func() {}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(ev.Brokers),
		pkgkafka.WithCompression("gzip"),
		pkgkafka.WithBatchTimeout(ev.FlushInterval/10),
		pkgkafka.WithAutoCreateTopic(true),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   ev.FlushInterval,
		CountThreshold: ev.CountThreshold,
		Topic:          ev.Topic,
		Publisher:      producer,
	})
	l.Info("ops events enabled",
		applogger.Strings("brokers", ev.Brokers),
		applogger.String("topic", ev.Topic),
	)

	cleanup := func() {
		// flush pending entries before the writer goes away
		l.RemoveCollector()
		if err := producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

// ProvideHTTPServer creates the Echo server with the full middleware stack.
func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	reg *prometheus.Registry,
	limiter ratelimit.Limiter,
	quotes *api.QuoteEchoHandler,
) (*xhttp.Server, error) {
	proxies, err := cfg.Server.ProxyNets()
	if err != nil {
		return nil, err
	}
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithLogger(l),
		xhttp.WithTrustedProxies(proxies...),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(reg, reg, cfg.Metrics.Path))
	}
	if limiter != nil {
		opts = append(opts, xhttp.WithMiddleware(mid.RateLimit(mid.RateLimitConfig{
			Limiter:    limiter,
			Logger:     l,
			PathPrefix: "/api/",
		})))
	}
	return xhttp.NewServer([]xhttp.Handler{quotes}, opts...), nil
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server, producer *pkgkafka.Producer) *server.App {
	return server.New(cfg, l, srv, producer != nil)
}
