// Package starcache caches catalog query results in a key-value store.
package starcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/astrovis/starfield/internal/db"
	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/query"
)

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// catalog is the inner client the cache decorates.
type catalog interface {
	Query(ctx context.Context, desc query.Descriptor) (domain.ResultSet, error)
}

// CachedCatalog is a read-through cache over a catalog client. Results
// are keyed by a hash of the query text; identical queries within the
// TTL never reach the remote service. Cache failures degrade to a miss
// and are logged, never surfaced.
type CachedCatalog struct {
	inner      catalog
	store      store
	ttl        time.Duration
	keyPrefix  string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner catalog,
	s store,
	ttl time.Duration,
	keyPrefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedCatalog {
	return &CachedCatalog{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		keyPrefix:  keyPrefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Query returns cached rows or calls the inner catalog client.
func (c *CachedCatalog) Query(ctx context.Context, desc query.Descriptor) (domain.ResultSet, error) {
	key := c.cacheKey(desc)

	if rows, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return rows, nil
	}

	c.incCache("miss")

	rows, err := c.inner.Query(ctx, desc)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, rows)
	return rows, nil
}

func (c *CachedCatalog) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedCatalog) cacheKey(desc query.Descriptor) string {
	h := sha256.Sum256([]byte(desc.ADQL()))
	return c.keyPrefix + "query_cache:" + hex.EncodeToString(h[:])
}

func (c *CachedCatalog) getFromCache(ctx context.Context, key string) (domain.ResultSet, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached result set", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	rows, err := bytesToRows(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached result set", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return rows, true
}

func (c *CachedCatalog) putToCache(ctx context.Context, key string, rows domain.ResultSet) {
	if err := c.store.SetWithTTL(ctx, key, rowsToBytes(rows), c.ttl); err != nil {
		c.logger.Warn("Failed to cache result set", zap.String("key", key), zap.Error(err))
	}
}

// rowSize is the wire size of one encoded catalog row: int64 source id
// plus three float64 columns. Binary rather than JSON because a null
// parallax is carried as NaN, which JSON cannot represent.
const rowSize = 8 * 4

func rowsToBytes(rows domain.ResultSet) []byte {
	buf := make([]byte, len(rows)*rowSize)
	for i, r := range rows {
		off := i * rowSize
		binary.LittleEndian.PutUint64(buf[off:], uint64(r.SourceID))
		binary.LittleEndian.PutUint64(buf[off+8:], math.Float64bits(r.RA))
		binary.LittleEndian.PutUint64(buf[off+16:], math.Float64bits(r.Dec))
		binary.LittleEndian.PutUint64(buf[off+24:], math.Float64bits(r.Parallax))
	}
	return buf
}

func bytesToRows(data []byte) (domain.ResultSet, error) {
	if len(data)%rowSize != 0 {
		return nil, fmt.Errorf("invalid result cache data: len=%d (not multiple of %d)", len(data), rowSize)
	}
	rows := make(domain.ResultSet, len(data)/rowSize)
	for i := range rows {
		off := i * rowSize
		rows[i] = domain.CatalogRow{
			SourceID: int64(binary.LittleEndian.Uint64(data[off:])),
			RA:       math.Float64frombits(binary.LittleEndian.Uint64(data[off+8:])),
			Dec:      math.Float64frombits(binary.LittleEndian.Uint64(data[off+16:])),
			Parallax: math.Float64frombits(binary.LittleEndian.Uint64(data[off+24:])),
		}
	}
	return rows, nil
}
