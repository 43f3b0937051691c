package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cinecircle/catalog/configs"
	"cinecircle/catalog/internal/controller/catalog"
	"cinecircle/catalog/internal/enrichment"
	grpchandler "cinecircle/catalog/internal/handler/grpc"
	"cinecircle/catalog/internal/processor"
	"cinecircle/catalog/internal/repository/memory"
	"cinecircle/catalog/internal/repository/mysql"
	"cinecircle/catalog/pkg/model"
	"cinecircle/gen"
	"cinecircle/internal/grpcutil"
	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/completion"
	"cinecircle/pkg/config"
	"cinecircle/pkg/discovery"
	"cinecircle/pkg/discovery/consul"
	"cinecircle/pkg/limiter"
	"cinecircle/pkg/logging"
	"cinecircle/pkg/metrics"
	"cinecircle/pkg/tracing"

	"github.com/grpc-ecosystem/go-grpc-middleware/ratelimit"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const serviceName = "catalog"

// catalogRepository is satisfied by both the MySQL and in-memory repositories.
type catalogRepository interface {
	Get(ctx context.Context, id model.ItemID) (*model.CatalogItem, error)
	Put(ctx context.Context, item *model.CatalogItem) error
	GetItems(ctx context.Context, ids []model.ItemID) ([]*model.CatalogItem, error)
	ListCandidates(ctx context.Context, exclude []model.ItemID, limit int) ([]*model.CatalogItem, error)
	ListUnenriched(ctx context.Context, kind model.EnrichmentKind, limit int) ([]*model.CatalogItem, error)
	SaveMoodScores(ctx context.Context, id model.ItemID, scores model.MoodScores, scoredAt time.Time) error
	SaveAdvisory(ctx context.Context, id model.ItemID, e *model.AdvisoryEnrichment, enrichedAt time.Time) error
}

func main() {
	log, err := logging.NewServiceLogger(serviceName)
	if err != nil {
		panic(err)
	}

	var cfg configs.ServiceConfig
	if err := config.Load(config.Path("defaults.yaml"), &cfg); err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}
	cfg.Completion.APIKey = config.Secret("COMPLETION_API_KEY", cfg.Completion.APIKey)

	log.Info("Starting the service", zap.Int(logging.FieldPort, cfg.API.Port))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := tracing.NewJaegerProvider(cfg.Jaeger.URL, serviceName)
	if err != nil {
		log.Fatal("Failed to initialize jaeger provider", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("Failed to shutdown jaeger provider", zap.Error(err))
		}
	}()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	registry, err := consul.NewRegistry(cfg.ServiceDiscovery.Consul.Address, log)
	if err != nil {
		log.Fatal("Failed to create consul registry", zap.Error(err))
	}
	instanceID := discovery.GenerateInstanceID(serviceName)
	if err := registry.Register(ctx, instanceID, serviceName, fmt.Sprintf("%s:%d", serviceName, cfg.API.Port)); err != nil {
		log.Fatal("Failed to register service", zap.Error(err))
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(1 * time.Second):
				if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
					log.Warn("Failed to report healthy state", zap.Error(err))
				}
			}
		}
	}()
	defer func() {
		if err := registry.Deregister(context.Background(), instanceID, serviceName); err != nil {
			log.Warn("Failed to deregister service", zap.Error(err))
		}
	}()

	scope, closer := metrics.NewMetricsReporter(log, serviceName, cfg.Prometheus.MetricsPort)
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn("Failed to close Prometheus reporter scope", zap.Error(err))
		}
	}()

	var repo catalogRepository
	switch cfg.DatabaseConfig.Driver {
	case "memory":
		repo = memory.New(log)
	default:
		r, err := mysql.New(cfg.DatabaseConfig.Mysql, log)
		if err != nil {
			log.Fatal("Failed to connect to mysql", zap.Error(err))
		}
		repo = r
	}

	gwCfg := cfg.CallGateway
	gwCfg.Credential = cfg.Completion.APIKey
	gateway := callgateway.New(completion.New(cfg.Completion, log), gwCfg, scope, log)
	pipelineCfg := enrichment.Config{InterBatchDelay: cfg.Enrichment.InterBatchDelay}
	svc := catalog.New(repo, log,
		enrichment.NewMoodPipeline(repo, gateway, pipelineCfg, scope, log),
		enrichment.NewAdvisoryPipeline(repo, gateway, pipelineCfg, scope, log),
	)

	if cfg.Processor.Enabled {
		p := processor.New(log, registry, svc, processor.Config{
			Interval: cfg.Processor.Interval,
			Limit:    cfg.Processor.Limit,
			BatchSizes: map[model.EnrichmentKind]int{
				model.KindMood:     cfg.Enrichment.MoodBatchSize,
				model.KindAdvisory: cfg.Enrichment.AdvisoryBatchSize,
			},
		})
		go func() {
			if err := p.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error("Processor stopped", zap.Error(err))
			}
		}()
	}

	creds, err := grpcutil.TransportCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		log.Fatal("Failed to load transport credentials", zap.Error(err))
	}
	h := grpchandler.New(svc, log, scope)

	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", cfg.API.Port))
	if err != nil {
		log.Fatal("failed to listen", zap.Error(err))
	}

	l := limiter.New(log, 100, 50)
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(ratelimit.UnaryServerInterceptor(l)),
		grpc.Creds(creds),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	gen.RegisterCatalogServiceServer(srv, h)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s := <-sigChan
		cancel()
		log.Info("Got signal, attempting graceful shutdown", zap.Stringer(logging.FieldSignal, s))
		srv.GracefulStop()
		log.Info("Gracefully stopped the gRPC server")
	}()

	if err := srv.Serve(lis); err != nil {
		log.Fatal("Failed to serve", zap.Error(err))
	}
	wg.Wait()
}
