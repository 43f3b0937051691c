package grpcutil

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"cinecircle/pkg/discovery"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ServiceConnection attempts to select a random service instance
// and returns a gRPC connection to it.
func ServiceConnection(ctx context.Context, serviceName string, registry discovery.Registry, creds credentials.TransportCredentials) (*grpc.ClientConn, error) {
	addrs, err := registry.ServiceAddresses(ctx, serviceName)
	if err != nil {
		return nil, err
	}
	return grpc.NewClient(addrs[rand.Intn(len(addrs))],
		grpc.WithTransportCredentials(creds),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
}

// TransportCredentials returns TLS credentials for the given cert and key
// files, or insecure credentials when both are empty.
func TransportCredentials(certFile string, keyFile string) (credentials.TransportCredentials, error) {
	if certFile == "" && keyFile == "" {
		return insecure.NewCredentials(), nil
	}
	return GetX509Credentials(certFile, keyFile)
}

// GetX509Credentials reads cert and key files and prepares TLS credentials.
func GetX509Credentials(c string, k string) (credentials.TransportCredentials, error) {
	certBytes, err := os.ReadFile(c)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}
	certPool := x509.NewCertPool()
	if !certPool.AppendCertsFromPEM(certBytes) {
		return nil, errors.New("failed to append certificate")
	}
	cert, err := tls.LoadX509KeyPair(c, k)
	if err != nil {
		return nil, fmt.Errorf("load key pair: %w", err)
	}
	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      certPool,
	}), nil
}
