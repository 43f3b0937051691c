package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cinecircle/gen"
	"cinecircle/internal/grpcutil"
	"cinecircle/pkg/auth"
	"cinecircle/pkg/config"
	"cinecircle/pkg/discovery"
	"cinecircle/pkg/discovery/consul"
	"cinecircle/pkg/limiter"
	"cinecircle/pkg/logging"
	"cinecircle/pkg/metrics"
	"cinecircle/pkg/tracing"
	"cinecircle/rating/configs"
	"cinecircle/rating/internal/controller/rating"
	grpchandler "cinecircle/rating/internal/handler/grpc"
	httphandler "cinecircle/rating/internal/handler/http"
	"cinecircle/rating/internal/ingester/kafka"
	"cinecircle/rating/internal/repository/memory"
	"cinecircle/rating/internal/repository/mysql"
	"cinecircle/rating/pkg/model"

	"github.com/grpc-ecosystem/go-grpc-middleware/ratelimit"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const serviceName = "rating"

// ratingRepository is satisfied by both the MySQL and in-memory repositories.
type ratingRepository interface {
	Get(ctx context.Context, userID model.UserID, itemID model.ItemID) (*model.Rating, error)
	Upsert(ctx context.Context, rating *model.Rating) error
	Delete(ctx context.Context, userID model.UserID, itemID model.ItemID) error
	ListByUsers(ctx context.Context, userIDs []model.UserID) ([]*model.Rating, error)
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
	secret := []byte(config.Secret("AUTH_SECRET", cfg.Auth.Secret))
	if len(secret) == 0 {
		log.Warn("No auth secret configured, every write will be rejected")
	}

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

	var repo ratingRepository
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

	verifier := auth.NewVerifier(func() []byte { return secret })
	kafkaCfg := cfg.MessengerConfig.Kafka
	var svc *rating.Controller
	if kafkaCfg.Enabled {
		ingester, err := kafka.NewIngester(fmt.Sprintf("%s:%d", kafkaCfg.Address, kafkaCfg.Port), kafkaCfg.GroupID, kafkaCfg.Topic, log)
		if err != nil {
			log.Fatal("Failed to initialize ingester", zap.Error(err))
		}
		svc = rating.New(repo, ingester, verifier, cfg.Dimensions, log)
		go func() {
			if err := svc.StartIngestion(ctx); err != nil {
				log.Error("Rating ingestion stopped", zap.Error(err))
			}
		}()
	} else {
		svc = rating.New(repo, nil, verifier, cfg.Dimensions, log)
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
	gen.RegisterRatingServiceServer(srv, h)

	var httpSrv *http.Server
	if cfg.API.HTTPPort > 0 {
		mux := http.NewServeMux()
		httphandler.New(svc, log).Register(mux)
		httpSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.API.HTTPPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("HTTP server stopped", zap.Error(err))
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s := <-sigChan
		cancel()
		log.Info("Got signal, attempting graceful shutdown", zap.Stringer(logging.FieldSignal, s))
		if httpSrv != nil {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				log.Warn("Failed to shutdown HTTP server", zap.Error(err))
			}
		}
		srv.GracefulStop()
		log.Info("Gracefully stopped the gRPC server")
	}()

	if err := srv.Serve(lis); err != nil {
		log.Fatal("Failed to serve", zap.Error(err))
	}
	wg.Wait()
}
