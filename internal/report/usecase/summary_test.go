package usecase

import (
	"math/rand"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/report/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockItem(id string, qty, minStock int64, cost int64) model.InventoryItem {
	return model.InventoryItem{
		ID:              id,
		Name:            "Rug " + id,
		Location:        "north",
		CostPrice:       decimal.NewFromInt(cost),
		CurrentQuantity: qty,
		MinimumStock:    minStock,
	}
}

func TestSummarizeInventory(t *testing.T) {
	s := SummarizeInventory("north", []model.InventoryItem{
		stockItem("a", 10, 3, 5),
		stockItem("b", 3, 3, 10),
		stockItem("c", 0, 1, 7),
	})
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, int64(13), s.TotalQuantity)
	assert.True(t, decimal.NewFromInt(80).Equal(s.TotalValue))
	assert.Equal(t, 2, s.LowStockItems, "equal to minimum counts as low")
	assert.Equal(t, 1, s.OutOfStockItems)
}

func TestLowStock_matchesDirectComputation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := make([]model.InventoryItem, 300)
	want := 0
	for i := range items {
		items[i] = stockItem(string(rune('a'+i%26))+string(rune('0'+i%10)), rng.Int63n(20)-2, rng.Int63n(10), 1)
		if items[i].CurrentQuantity <= items[i].MinimumStock {
			want++
		}
	}

	low := LowStock(items)
	assert.Len(t, low, want)
	assert.Equal(t, want, SummarizeInventory("all", items).LowStockItems)
	for i := 1; i < len(low); i++ {
		assert.LessOrEqual(t, low[i-1].CurrentQuantity, low[i].CurrentQuantity)
	}
}

func sale(loc string, status model.OrderStatus, lines ...model.OrderLine) model.Order {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total)
	}
	return model.Order{Location: loc, Status: status, Lines: lines, Subtotal: total, Total: total}
}

func line(item string, qty, price int64) model.OrderLine {
	return model.OrderLine{ItemID: item, Quantity: qty, UnitPrice: decimal.NewFromInt(price), Total: decimal.NewFromInt(qty * price)}
}

func TestSummarizeSales(t *testing.T) {
	orders := []model.Order{
		sale("north", model.OrderPaid, line("a", 2, 100), line("b", 1, 50)),
		sale("south", model.OrderUnpaid, line("a", 1, 100)),
		sale("north", model.OrderDraft, line("b", 9, 50)),
		sale("north", model.OrderCancelled, line("a", 5, 100)),
	}
	items := []model.InventoryItem{stockItem("a", 1, 0, 1), stockItem("b", 1, 0, 1)}

	s := SummarizeSales("all", nil, nil, orders, items)
	assert.Equal(t, 2, s.OrderCount)
	assert.True(t, decimal.NewFromInt(350).Equal(s.TotalRevenue))
	assert.True(t, decimal.NewFromInt(175).Equal(s.AverageOrderValue))

	require.Len(t, s.ByLocation, 2)
	assert.Equal(t, "north", s.ByLocation[0].Location)
	assert.True(t, decimal.NewFromInt(250).Equal(s.ByLocation[0].Revenue))
	assert.Equal(t, 1, s.ByLocation[1].OrderCount)

	require.Len(t, s.ByProduct, 2)
	assert.Equal(t, dto.ProductSales{ItemID: "a", Name: "Rug a", QuantitySold: 3, Revenue: s.ByProduct[0].Revenue}, s.ByProduct[0])
	assert.True(t, decimal.NewFromInt(300).Equal(s.ByProduct[0].Revenue))
	assert.Equal(t, int64(1), s.ByProduct[1].QuantitySold)
}

func TestSummarizeSales_empty(t *testing.T) {
	s := SummarizeSales("north", nil, nil, nil, nil)
	assert.Zero(t, s.OrderCount)
	assert.True(t, s.AverageOrderValue.IsZero())
	assert.NotNil(t, s.ByLocation)
	assert.NotNil(t, s.ByProduct)
}

func TestSummarizeDashboard(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := sale("north", model.OrderPaid, line("a", 1, 100))
	thisMonth.CreatedAt = now.AddDate(0, 0, -3)
	lastMonth := sale("north", model.OrderPaid, line("a", 1, 40))
	lastMonth.CreatedAt = now.AddDate(0, -1, 0)
	unpaid := sale("north", model.OrderUnpaid, line("a", 1, 10))
	draft := sale("north", model.OrderDraft, line("a", 1, 999))

	st := SummarizeDashboard("north", &dto.DashboardSnapshot{
		Items:         []model.InventoryItem{stockItem("a", 2, 5, 10), stockItem("b", 8, 1, 10)},
		Orders:        []model.Order{thisMonth, lastMonth, unpaid, draft},
		CustomerCount: 4,
	}, now)

	assert.Equal(t, 4, st.TotalCustomers)
	assert.Equal(t, 2, st.TotalItems)
	assert.Equal(t, 4, st.TotalOrders)
	assert.Equal(t, 2, st.PaidOrders)
	assert.Equal(t, 1, st.UnpaidOrders)
	assert.Equal(t, 1, st.PendingOrders)
	assert.True(t, decimal.NewFromInt(150).Equal(st.TotalSales))
	assert.True(t, decimal.NewFromInt(100).Equal(st.MonthlyRevenue))
	assert.True(t, decimal.NewFromInt(100).Equal(st.InventoryValue))
	assert.Equal(t, 1, st.LowStockItems)
	assert.NotNil(t, st.RecentMovements)
}

func TestCheckLedger(t *testing.T) {
	item := &model.InventoryItem{ID: "a", InitialQuantity: 10, CurrentQuantity: 12}
	movements := []model.Movement{
		{Sequence: 1, PreviousQuantity: 10, QuantityChange: 5, NewQuantity: 15},
		{Sequence: 2, PreviousQuantity: 15, QuantityChange: -3, NewQuantity: 12},
	}

	c := CheckLedger(item, movements)
	assert.True(t, c.Consistent)
	assert.Equal(t, int64(12), c.LedgerQuantity)
	assert.Empty(t, c.ChainBreaks)

	item.CurrentQuantity = 11
	c = CheckLedger(item, movements)
	assert.False(t, c.Consistent)

	item.CurrentQuantity = 12
	movements[1].PreviousQuantity = 14
	movements[1].NewQuantity = 11
	c = CheckLedger(item, movements)
	assert.False(t, c.Consistent)
	assert.Equal(t, []int64{2}, c.ChainBreaks)
}
