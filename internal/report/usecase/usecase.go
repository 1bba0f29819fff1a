package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/report"
	"github.com/fekuna/omnipos-stock-ledger/internal/report/dto"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cachePrefix = "reports:"
	// generationKey lives outside cachePrefix so pattern deletes keep it.
	generationKey   = "reports-generation"
	recentMovements = 5
)

// Cache is the subset of cache.RedisClient the reports need.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
	Incr(ctx context.Context, key string) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
}

type reportUseCase struct {
	repo   report.Repository
	cache  Cache
	ttl    time.Duration
	group  singleflight.Group
	logger logger.ZapLogger
	now    func() time.Time
}

// NewReportUseCase builds the reader. A nil cache or a zero ttl disables caching.
func NewReportUseCase(repo report.Repository, cache Cache, ttl time.Duration, log logger.ZapLogger) report.UseCase {
	if ttl <= 0 {
		cache = nil
	}
	return &reportUseCase{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func scope(location string) string {
	if location == "" {
		return "all"
	}
	return location
}

// cached serves key from the cache or computes it with load, collapsing concurrent misses.
// Entries are stored under the cache generation read before load runs, so a value computed
// across an invalidation lands in a generation no reader asks for again.
// Cache failures degrade to a direct computation.
func cached[T any](ctx context.Context, uc *reportUseCase, key string, load func() (T, error)) (T, error) {
	if uc.cache == nil {
		return load()
	}

	gen, err := uc.cache.GetInt(ctx, generationKey)
	if err != nil {
		uc.logger.Warn("report cache generation read failed", zap.Error(err))
		return load()
	}
	key = fmt.Sprintf("%sg%d:%s", cachePrefix, gen, key)

	var hit T
	ok, err := uc.cache.GetJSON(ctx, key, &hit)
	if err != nil {
		uc.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return hit, nil
	}

	v, err, _ := uc.group.Do(key, func() (interface{}, error) {
		val, err := load()
		if err != nil {
			return val, err
		}
		if err := uc.cache.SetJSON(ctx, key, val, uc.ttl); err != nil {
			uc.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (uc *reportUseCase) InventorySummary(ctx context.Context, location string) (*dto.InventorySummary, error) {
	location = scope(location)
	return cached(ctx, uc, "inventory:"+location, func() (*dto.InventorySummary, error) {
		items, err := uc.repo.ItemsSnapshot(ctx, location)
		if err != nil {
			return nil, err
		}
		return SummarizeInventory(location, items), nil
	})
}

func (uc *reportUseCase) LowStockItems(ctx context.Context, location string) ([]model.InventoryItem, error) {
	location = scope(location)
	return cached(ctx, uc, "low-stock:"+location, func() ([]model.InventoryItem, error) {
		items, err := uc.repo.ItemsSnapshot(ctx, location)
		if err != nil {
			return nil, err
		}
		return LowStock(items), nil
	})
}

func (uc *reportUseCase) SalesSummary(ctx context.Context, location string, from, to *time.Time) (*dto.SalesSummary, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperror.Validation("report window ends before it starts")
	}
	location = scope(location)
	key := fmt.Sprintf("sales:%s:%s:%s", location, stamp(from), stamp(to))
	return cached(ctx, uc, key, func() (*dto.SalesSummary, error) {
		orders, err := uc.repo.OrdersSnapshot(ctx, location, from, to)
		if err != nil {
			return nil, err
		}
		// Item names only label the product rows; they are not part of the aggregate.
		items, err := uc.repo.ItemsSnapshot(ctx, "all")
		if err != nil {
			return nil, err
		}
		return SummarizeSales(location, from, to, orders, items), nil
	})
}

func stamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func (uc *reportUseCase) DashboardStats(ctx context.Context, location string) (*dto.DashboardStats, error) {
	location = scope(location)
	return cached(ctx, uc, "dashboard:"+location, func() (*dto.DashboardStats, error) {
		snap, err := uc.repo.DashboardSnapshot(ctx, location, recentMovements)
		if err != nil {
			return nil, err
		}
		return SummarizeDashboard(location, snap, uc.now()), nil
	})
}

// VerifyItemLedger is never cached.
func (uc *reportUseCase) VerifyItemLedger(ctx context.Context, itemID string) (*dto.LedgerCheck, error) {
	item, movements, err := uc.repo.ItemLedgerSnapshot(ctx, itemID)
	if err != nil {
		return nil, err
	}
	check := CheckLedger(item, movements)
	if !check.Consistent {
		uc.logger.Error("item ledger is inconsistent",
			zap.String("item_id", itemID),
			zap.Int64("current", check.CurrentQuantity),
			zap.Int64("ledger", check.LedgerQuantity),
			zap.Int64s("chain_breaks", check.ChainBreaks),
		)
	}
	return check, nil
}

// Invalidator drops cached reports whenever stock moves.
type Invalidator struct {
	cache Cache
}

func NewInvalidator(cache Cache) *Invalidator {
	return &Invalidator{cache: cache}
}

// OnMovementsCommitted implements ledger.Notifier. The generation moves first so loads
// already in flight cannot repopulate the keys being cleared.
func (i *Invalidator) OnMovementsCommitted(ctx context.Context, _ []model.Movement) error {
	if _, err := i.cache.Incr(ctx, generationKey); err != nil {
		return fmt.Errorf("bump report cache generation: %w", err)
	}
	if _, err := i.cache.DeleteByPattern(ctx, cachePrefix+"*"); err != nil {
		return fmt.Errorf("invalidate report cache: %w", err)
	}
	return nil
}
