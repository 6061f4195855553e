package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fjod/go_shop/internal/cache"
	"github.com/fjod/go_shop/internal/document"
	"github.com/fjod/go_shop/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderSource looks up orders by id.
type OrderSource interface {
	Order(orderID string) (*domain.Order, bool)
}

// Exporter renders order documents, archives them under dataDir and caches
// them. Cache entries are keyed by order id and status, so a status change
// never serves a stale document.
type Exporter struct {
	orders  OrderSource
	cache   cache.DocumentCache
	dataDir string
	logger  *zap.Logger

	sfg singleflight.Group // one render per order at a time
	wg  sync.WaitGroup     // pending cache writes
}

func NewExporter(orders OrderSource, c cache.DocumentCache, dataDir string, logger *zap.Logger) (*Exporter, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Exporter{
		orders:  orders,
		cache:   c,
		dataDir: dataDir,
		logger:  logger,
	}, nil
}

// Document returns the XML document for orderID.
func (e *Exporter) Document(ctx context.Context, orderID string) ([]byte, error) {
	order, ok := e.orders.Order(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	key := cacheKey(order)

	v, err, _ := e.sfg.Do(key, func() (interface{}, error) {
		doc, err := e.cache.Get(ctx, key)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			e.logger.Warn("cache get error", zap.String("order_id", orderID), zap.Error(err))
		}

		doc, err = document.Encode(order)
		if err != nil {
			return nil, err
		}
		if err := e.archive(order.ID, doc); err != nil {
			return nil, err
		}

		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := e.cache.Set(ctx, key, doc); errSet != nil {
				e.logger.Warn("cache set error", zap.String("order_id", orderID), zap.Error(errSet))
			}
		}()

		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Path is where the archived document for orderID is written.
func (e *Exporter) Path(orderID string) string {
	return filepath.Join(e.dataDir, document.Filename(orderID))
}

// Close waits for pending cache writes.
func (e *Exporter) Close() {
	e.wg.Wait()
}

// archive writes through a temp file so readers never see a partial document.
func (e *Exporter) archive(orderID string, doc []byte) error {
	tmp, err := os.CreateTemp(e.dataDir, document.Filename(orderID)+".*.tmp")
	if err != nil {
		return fmt.Errorf("archive order %s: %w", orderID, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("archive order %s: %w", orderID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("archive order %s: %w", orderID, err)
	}
	if err := os.Rename(tmp.Name(), e.Path(orderID)); err != nil {
		return fmt.Errorf("archive order %s: %w", orderID, err)
	}
	return nil
}

func cacheKey(o *domain.Order) string {
	return o.ID + "@" + o.Status().String()
}
