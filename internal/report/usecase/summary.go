package usecase

import (
	"sort"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/report/dto"
	"github.com/shopspring/decimal"
)

// The functions in this file are pure: they only aggregate the snapshot they are given.

func SummarizeInventory(location string, items []model.InventoryItem) *dto.InventorySummary {
	s := &dto.InventorySummary{Location: location, TotalValue: decimal.Zero}
	for i := range items {
		it := &items[i]
		s.TotalItems++
		s.TotalQuantity += it.CurrentQuantity
		s.TotalValue = s.TotalValue.Add(it.StockValue())
		if it.IsLowStock() {
			s.LowStockItems++
		}
		if it.IsOutOfStock() {
			s.OutOfStockItems++
		}
	}
	return s
}

// LowStock keeps the items at or below their minimum, lowest quantity first.
func LowStock(items []model.InventoryItem) []model.InventoryItem {
	out := make([]model.InventoryItem, 0)
	for _, it := range items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CurrentQuantity != out[j].CurrentQuantity {
			return out[i].CurrentQuantity < out[j].CurrentQuantity
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// countsAsSale reports whether an order contributes to revenue. Drafts never moved stock
// and cancelled orders are void.
func countsAsSale(o *model.Order) bool {
	return o.Status == model.OrderUnpaid || o.Status == model.OrderPaid
}

func SummarizeSales(location string, from, to *time.Time, orders []model.Order, items []model.InventoryItem) *dto.SalesSummary {
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}

	s := &dto.SalesSummary{
		Location:          location,
		From:              from,
		To:                to,
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		ByLocation:        []dto.LocationSales{},
		ByProduct:         []dto.ProductSales{},
	}
	byLocation := make(map[string]*dto.LocationSales)
	byProduct := make(map[string]*dto.ProductSales)

	for i := range orders {
		o := &orders[i]
		if !countsAsSale(o) {
			continue
		}
		s.OrderCount++
		s.TotalRevenue = s.TotalRevenue.Add(o.Total)

		loc, ok := byLocation[o.Location]
		if !ok {
			loc = &dto.LocationSales{Location: o.Location, Revenue: decimal.Zero}
			byLocation[o.Location] = loc
		}
		loc.OrderCount++
		loc.Revenue = loc.Revenue.Add(o.Total)

		for _, l := range o.Lines {
			p, ok := byProduct[l.ItemID]
			if !ok {
				p = &dto.ProductSales{ItemID: l.ItemID, Name: names[l.ItemID], Revenue: decimal.Zero}
				byProduct[l.ItemID] = p
			}
			p.QuantitySold += l.Quantity
			p.Revenue = p.Revenue.Add(l.Total)
		}
	}

	if s.OrderCount > 0 {
		s.AverageOrderValue = s.TotalRevenue.DivRound(decimal.NewFromInt(int64(s.OrderCount)), 2)
	}
	for _, l := range byLocation {
		s.ByLocation = append(s.ByLocation, *l)
	}
	sort.Slice(s.ByLocation, func(i, j int) bool { return s.ByLocation[i].Location < s.ByLocation[j].Location })
	for _, p := range byProduct {
		s.ByProduct = append(s.ByProduct, *p)
	}
	sort.Slice(s.ByProduct, func(i, j int) bool {
		if c := s.ByProduct[i].Revenue.Cmp(s.ByProduct[j].Revenue); c != 0 {
			return c > 0
		}
		return s.ByProduct[i].ItemID < s.ByProduct[j].ItemID
	})
	return s
}

// SummarizeDashboard derives the dashboard figures. Monthly revenue counts paid orders
// created in now's calendar month.
func SummarizeDashboard(location string, snap *dto.DashboardSnapshot, now time.Time) *dto.DashboardStats {
	inv := SummarizeInventory(location, snap.Items)
	st := &dto.DashboardStats{
		Location:        location,
		TotalCustomers:  snap.CustomerCount,
		TotalItems:      inv.TotalItems,
		TotalOrders:     len(snap.Orders),
		TotalSales:      decimal.Zero,
		MonthlyRevenue:  decimal.Zero,
		InventoryValue:  inv.TotalValue,
		LowStockItems:   inv.LowStockItems,
		RecentMovements: snap.RecentMovements,
	}
	if st.RecentMovements == nil {
		st.RecentMovements = []model.Movement{}
	}

	year, month, _ := now.Date()
	for i := range snap.Orders {
		o := &snap.Orders[i]
		switch o.Status {
		case model.OrderPaid:
			st.PaidOrders++
			y, m, _ := o.CreatedAt.In(now.Location()).Date()
			if y == year && m == month {
				st.MonthlyRevenue = st.MonthlyRevenue.Add(o.Total)
			}
		case model.OrderUnpaid:
			st.UnpaidOrders++
		case model.OrderDraft:
			st.PendingOrders++
		}
		if countsAsSale(o) {
			st.TotalSales = st.TotalSales.Add(o.Total)
		}
	}
	return st
}

// CheckLedger replays movements (in ledger order) from the item's initial quantity and
// compares the result with the cached current quantity. A chain break is the sequence of a
// movement whose previous quantity is not the running total, or whose change does not
// account for its own previous and new quantities.
func CheckLedger(item *model.InventoryItem, movements []model.Movement) *dto.LedgerCheck {
	c := &dto.LedgerCheck{
		ItemID:          item.ID,
		InitialQuantity: item.InitialQuantity,
		CurrentQuantity: item.CurrentQuantity,
		Movements:       len(movements),
	}
	running := item.InitialQuantity
	for _, m := range movements {
		if m.PreviousQuantity != running || m.NewQuantity != m.PreviousQuantity+m.QuantityChange {
			c.ChainBreaks = append(c.ChainBreaks, m.Sequence)
		}
		running += m.QuantityChange
	}
	c.LedgerQuantity = running
	c.Consistent = len(c.ChainBreaks) == 0 && running == item.CurrentQuantity
	return c
}
