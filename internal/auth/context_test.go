package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-stock-ledger/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestFromContext_defaultsToAllLocations(t *testing.T) {
	uc := FromContext(context.Background())
	assert.Equal(t, AllLocations, uc.Location)
	assert.Equal(t, "system", uc.Actor())
	assert.True(t, uc.CanAccess("warehouse-a"))
}

func TestFromContext_metadataFallback(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		"x-user-id", "u-1",
		"x-location", "north",
	))
	uc := FromContext(ctx)
	assert.Equal(t, "u-1", uc.Actor())
	assert.Equal(t, "north", uc.Location)
	assert.True(t, uc.CanAccess("north"))
	assert.False(t, uc.CanAccess("south"))
	assert.Equal(t, "north", uc.Scope("south"))
}

func TestContextInterceptor_populatesContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		"x-user-id", "u-2",
		"x-user-role", "manager",
		"x-location", "south",
	))

	var seen UserContext
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = FromContext(ctx)
		return nil, nil
	}
	_, err := middleware.ContextInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/test"}, handler)
	require.NoError(t, err)

	assert.Equal(t, UserContext{UserID: "u-2", Role: "manager", Location: "south"}, seen)
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/reports/inventory", nil)
	r.Header.Set("X-User-ID", "u-3")
	uc := FromRequest(r)
	assert.Equal(t, "u-3", uc.UserID)
	assert.Equal(t, AllLocations, uc.Location)
	assert.Equal(t, "east", uc.Scope("east"))
	assert.Equal(t, AllLocations, uc.Scope(""))
}
