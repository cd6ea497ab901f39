package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nemonet1337/sproutGoFarm/internal/config"
	"github.com/nemonet1337/sproutGoFarm/pkg/farm"
)

const (
	inventoryReportKeyPrefix = "inventory_report"
	scanBatchSize            = 100
	defaultTTL               = time.Minute
)

// ReportCache caches the daily inventory report keyed by date
// 日次在庫レポートを日付キーでキャッシュ
type ReportCache interface {
	GetInventoryReport(ctx context.Context, date time.Time) (*farm.InventoryReport, bool, error)
	SetInventoryReport(ctx context.Context, report *farm.InventoryReport) error
	Invalidate(ctx context.Context, date time.Time) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache creates a Redis-backed cache, or a no-op cache when disabled
// Redisキャッシュを作成。無効時は何もしないキャッシュを返す
func NewReportCache(cfg config.RedisConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis接続に失敗しました: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// NewNoopReportCache creates a cache that stores nothing
// 何も保存しないキャッシュを作成
func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetInventoryReport(ctx context.Context, date time.Time) (*farm.InventoryReport, bool, error) {
	key := reportKey(date)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Redis取得に失敗しました: %w", err)
	}

	var report farm.InventoryReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("キャッシュのデコードに失敗しました: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetInventoryReport(ctx context.Context, report *farm.InventoryReport) error {
	key := reportKey(report.Date)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("キャッシュのエンコードに失敗しました: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("Redis保存に失敗しました: %w", err)
	}
	return nil
}

func (c *redisReportCache) Invalidate(ctx context.Context, date time.Time) error {
	return c.client.Del(ctx, reportKey(date)).Err()
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	pattern := inventoryReportKeyPrefix + ":*"
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("Redisスキャンに失敗しました: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("Redis削除に失敗しました: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (c *redisReportCache) Close() error {
	return c.client.Close()
}

func (n *noopReportCache) GetInventoryReport(ctx context.Context, date time.Time) (*farm.InventoryReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetInventoryReport(ctx context.Context, report *farm.InventoryReport) error {
	return nil
}

func (n *noopReportCache) Invalidate(ctx context.Context, date time.Time) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (n *noopReportCache) Close() error {
	return nil
}

// reportKey builds the cache key for a report date
// レポート日付のキャッシュキーを作成
func reportKey(date time.Time) string {
	return fmt.Sprintf("%s:%s", inventoryReportKeyPrefix, date.Format("2006-01-02"))
}
