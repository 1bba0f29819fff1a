package handler

import (
	"context"
	"net"
	"testing"

	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/usecase"
	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/storage/memory"
	stockv1 "github.com/fekuna/omnipos-stock-ledger/pkg/api/stockv1"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/fekuna/omnipos-stock-ledger/pkg/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T) *stockv1.InventoryServiceClient {
	t.Helper()
	store := memory.NewStore()
	w := ledger.NewWriter(store, ledger.Config{AllowNegativeStock: true}, logger.NewNop())
	h := NewInventoryHandler(usecase.NewInventoryUseCase(store, w, logger.NewNop()), logger.NewNop())

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(middleware.ContextInterceptor()))
	stockv1.RegisterInventoryServiceServer(srv, h)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return stockv1.NewInventoryServiceClient(conn)
}

func as(location string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "x-user-id", "u-"+location, "x-location", location)
}

func createItem(t *testing.T, c *stockv1.InventoryServiceClient, sku, location string) *stockv1.Item {
	t.Helper()
	item, err := c.CreateItem(as("all"), &stockv1.CreateItemRequest{
		Name: "Kilim " + sku, Category: "rug", Material: "cotton", Color: "blue", Size: "3x5",
		UnitPrice: decimal.NewFromInt(80), CostPrice: decimal.NewFromInt(40),
		Quantity: 10, MinimumStock: 2, Barcode: "BC-" + sku, Sku: sku, Location: location,
	})
	require.NoError(t, err)
	return item
}

func TestAdjustStock_overGRPC(t *testing.T) {
	c := startServer(t)
	item := createItem(t, c, "K-1", "north")
	assert.Equal(t, "u-all", item.CreatedBy)

	resp, err := c.AdjustStock(as("north"), &stockv1.AdjustStockRequest{ItemId: item.Id, MovementType: "out", Quantity: 4, Notes: "damaged"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.Item.CurrentQuantity)
	assert.Equal(t, int64(-4), resp.Movement.QuantityChange)
	assert.Equal(t, "u-north", resp.Movement.CreatedBy)
	assert.Equal(t, "north", resp.Movement.Location)

	movs, err := c.ListItemMovements(as("north"), &stockv1.ListItemMovementsRequest{ItemId: item.Id})
	require.NoError(t, err)
	assert.Equal(t, int32(1), movs.Total)
}

func TestAccessIsScopedToLocation(t *testing.T) {
	c := startServer(t)
	north := createItem(t, c, "K-1", "north")
	createItem(t, c, "K-2", "south")

	_, err := c.GetItem(as("south"), &stockv1.GetItemRequest{Id: north.Id})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = c.AdjustStock(as("south"), &stockv1.AdjustStockRequest{ItemId: north.Id, MovementType: "in", Quantity: 1})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	list, err := c.ListItems(as("south"), &stockv1.ListItemsRequest{Location: "north"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "south", list.Items[0].Location)

	list, err = c.ListItems(as("all"), &stockv1.ListItemsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), list.Total)
}

func TestErrorCodes(t *testing.T) {
	c := startServer(t)
	item := createItem(t, c, "K-1", "north")

	_, err := c.GetItem(as("all"), &stockv1.GetItemRequest{Id: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.AdjustStock(as("all"), &stockv1.AdjustStockRequest{ItemId: item.Id, MovementType: "in", Quantity: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.CreateItem(as("all"), &stockv1.CreateItemRequest{
		Name: "dup", Category: "rug", Material: "wool", Color: "red", Size: "1x1",
		Barcode: "BC-K-1", Sku: "K-9", Location: "north",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}
