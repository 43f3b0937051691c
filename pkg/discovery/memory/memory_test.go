package memory

import (
	"context"
	"testing"

	"cinecircle/pkg/discovery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	_, err := r.ServiceAddresses(ctx, "catalog")
	assert.ErrorIs(t, err, discovery.ErrNotFound)

	require.NoError(t, r.Register(ctx, "catalog-1", "catalog", "localhost:8081"))
	addrs, err := r.ServiceAddresses(ctx, "catalog")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:8081"}, addrs)

	assert.NoError(t, r.ReportHealthyState("catalog-1", "catalog"))
	assert.Error(t, r.ReportHealthyState("catalog-2", "catalog"))
	assert.Error(t, r.ReportHealthyState("catalog-1", "rating"))

	require.NoError(t, r.Deregister(ctx, "catalog-1", "catalog"))
	_, err = r.ServiceAddresses(ctx, "catalog")
	assert.ErrorIs(t, err, discovery.ErrNotFound)
}
