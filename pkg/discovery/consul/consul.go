package consul

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cinecircle/pkg/discovery"
	"cinecircle/pkg/logging"

	consul "github.com/hashicorp/consul/api"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerID = "discovery-consul"

// Registry defines a Consul-based service registry.
type Registry struct {
	client *consul.Client
	logger *zap.Logger
}

// NewRegistry creates a new Consul-based service registry instance.
func NewRegistry(addr string, logger *zap.Logger) (*Registry, error) {
	logger = logger.With(
		zap.String(logging.FieldComponent, "discovery"),
		zap.String(logging.FieldType, "consul"),
	)
	config := consul.DefaultConfig()
	config.Address = addr
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &Registry{client, logger}, nil
}

// Register creates a service record in the registry.
func (r *Registry) Register(ctx context.Context, instanceID string, serviceName string, hostPort string) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Register")
	defer span.End()
	parts := strings.Split(hostPort, ":")
	if len(parts) != 2 {
		return errors.New("hostPort must be in a form of <host>:<port>, example: localhost:8500")
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}
	r.logger.Info("Registering service instance", zap.String("instance", instanceID), zap.String("hostPort", hostPort))
	return r.client.Agent().ServiceRegister(&consul.AgentServiceRegistration{
		Address: parts[0],
		ID:      instanceID,
		Name:    serviceName,
		Port:    port,
		Check:   &consul.AgentServiceCheck{CheckID: instanceID, TTL: "5s"},
	})
}

// Deregister removes a service record from the registry.
func (r *Registry) Deregister(ctx context.Context, instanceID string, _ string) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Deregister")
	defer span.End()
	return r.client.Agent().ServiceDeregister(instanceID)
}

// ServiceAddresses returns the list of addresses of active instance of the given service.
func (r *Registry) ServiceAddresses(ctx context.Context, serviceName string) ([]string, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "ServiceAddresses")
	defer span.End()
	entries, _, err := r.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, err
	} else if len(entries) == 0 {
		return nil, discovery.ErrNotFound
	}
	var res []string
	for _, e := range entries {
		res = append(res, fmt.Sprintf("%s:%d", e.Service.Address, e.Service.Port))
	}
	return res, nil
}

// ReportHealthyState is a push mechanism for reporting healthy state to the registry.
func (r *Registry) ReportHealthyState(instanceID string, _ string) error {
	_, span := otel.Tracer(tracerID).Start(context.Background(), "ReportHealthyState")
	defer span.End()
	return r.client.Agent().PassTTL(instanceID, "")
}

// Acquire takes a Consul session lock on key, blocking until it is held or
// ctx is done. The returned release function unlocks the key.
func (r *Registry) Acquire(ctx context.Context, key string) (bool, func() error, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Acquire")
	defer span.End()
	lock, err := r.client.LockKey(key)
	if err != nil {
		return false, nil, err
	}
	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			close(stopCh)
		case <-done:
		}
	}()
	lostCh, err := lock.Lock(stopCh)
	if err != nil {
		close(done)
		return false, nil, err
	}
	if lostCh == nil {
		close(done)
		return false, nil, ctx.Err()
	}
	r.logger.Debug("Lock acquired", zap.String("key", key))
	return true, func() error {
		close(done)
		return lock.Unlock()
	}, nil
}
