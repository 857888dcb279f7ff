package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tenantli-inspect/internal/store"

	"go.uber.org/zap"
)

// ErrCacheMiss 本地备份里没有这份数据
var ErrCacheMiss = errors.New("no cached copy")

// Cache section keys. The key format mirrors what the wizard has always
// written, so existing cached blobs stay readable.
const (
	SectionLeaseDocuments = "lease_documents"
	SectionLandlord       = "landlord"
	SectionIncomplete     = "incomplete"
)

// cacheTTL 备份数据保留时长；备份永远不是权威数据，过期即弃
const cacheTTL = 7 * 24 * time.Hour

// FallbackCache mirrors the last known server state per property as plain
// JSON blobs (`property_{id}_{section}`). It is read opportunistically when
// the network is degraded, one layer above the assembly engine, and is never
// authoritative.
type FallbackCache struct {
	kv     store.KV
	logger *zap.Logger
}

func NewFallbackCache(kv store.KV, logger *zap.Logger) *FallbackCache {
	return &FallbackCache{kv: kv, logger: logger}
}

func cacheKey(propertyID, section string) string {
	return fmt.Sprintf("property_%s_%s", propertyID, section)
}

// Save 把服务端最新状态镜像到本地备份（尽力而为，失败只记日志）
func (c *FallbackCache) Save(ctx context.Context, propertyID, section string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to marshal cache mirror",
			zap.String("property_id", propertyID),
			zap.String("section", section),
			zap.Error(err),
		)
		return
	}
	if err := c.kv.Set(ctx, cacheKey(propertyID, section), string(data), cacheTTL); err != nil {
		c.logger.Warn("Failed to write cache mirror",
			zap.String("property_id", propertyID),
			zap.String("section", section),
			zap.Error(err),
		)
	}
}

// Load 读取最近一次镜像；缓存没有时返回 ErrCacheMiss
func (c *FallbackCache) Load(ctx context.Context, propertyID, section string, out any) error {
	data, err := c.kv.Get(ctx, cacheKey(propertyID, section))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read cache mirror: %w", err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("failed to decode cache mirror: %w", err)
	}
	return nil
}

// Invalidate 丢弃一个分区的镜像（服务端确认删除后调用）
func (c *FallbackCache) Invalidate(ctx context.Context, propertyID, section string) {
	if err := c.kv.Delete(ctx, cacheKey(propertyID, section)); err != nil {
		c.logger.Warn("Failed to invalidate cache mirror",
			zap.String("property_id", propertyID),
			zap.String("section", section),
			zap.Error(err),
		)
	}
}
