package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
)

// ErrCacheMiss 缓存中不存在目标键
var ErrCacheMiss = errors.New("缓存未命中")

// Redis 封装缓存访问：JD文本缓存与嵌入向量缓存
type Redis struct {
	client *redis.Client
}

// NewRedis 创建Redis客户端并完成连通性检查
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
	if cfg.DialTimeoutSeconds > 0 {
		opts.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		opts.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		opts.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}
	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("启用Redis链路追踪失败: %w", err)
	}

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// CacheJobDescription 缓存批次对应的JD原文
func (r *Redis) CacheJobDescription(ctx context.Context, batchID, text string) error {
	key := fmt.Sprintf(constants.KeyJobDescriptionText, batchID)
	if err := r.client.Set(ctx, key, text, constants.JDCacheDuration).Err(); err != nil {
		return fmt.Errorf("缓存JD文本失败: %w", err)
	}
	return nil
}

// GetJobDescription 读取批次JD原文，未命中返回 ErrCacheMiss
func (r *Redis) GetJobDescription(ctx context.Context, batchID string) (string, error) {
	key := fmt.Sprintf(constants.KeyJobDescriptionText, batchID)
	text, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("读取JD缓存失败: %w", err)
	}
	return text, nil
}

// embeddingCacheKey 对文本做MD5摘要作为缓存键，避免长文本直接入键
func embeddingCacheKey(text string) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf(constants.KeyEmbeddingVector, hex.EncodeToString(sum[:]))
}

// CacheEmbedding 缓存文本的嵌入向量
func (r *Redis) CacheEmbedding(ctx context.Context, text string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("序列化嵌入向量失败: %w", err)
	}
	if err := r.client.Set(ctx, embeddingCacheKey(text), data, constants.EmbeddingCacheDuration).Err(); err != nil {
		return fmt.Errorf("缓存嵌入向量失败: %w", err)
	}
	return nil
}

// GetCachedEmbedding 读取文本的嵌入向量缓存，未命中返回 ErrCacheMiss
func (r *Redis) GetCachedEmbedding(ctx context.Context, text string) ([]float64, error) {
	data, err := r.client.Get(ctx, embeddingCacheKey(text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("读取嵌入缓存失败: %w", err)
	}
	var vector []float64
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, fmt.Errorf("反序列化嵌入向量失败: %w", err)
	}
	return vector, nil
}

// CacheRanking 缓存批次排名的JSON快照
func (r *Redis) CacheRanking(ctx context.Context, batchID string, payload []byte) error {
	key := fmt.Sprintf(constants.KeyBatchRanking, batchID)
	if err := r.client.Set(ctx, key, payload, constants.RankingCacheDuration).Err(); err != nil {
		return fmt.Errorf("缓存批次排名失败: %w", err)
	}
	return nil
}

// GetCachedRanking 读取批次排名快照，未命中返回 ErrCacheMiss
func (r *Redis) GetCachedRanking(ctx context.Context, batchID string) ([]byte, error) {
	key := fmt.Sprintf(constants.KeyBatchRanking, batchID)
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("读取排名缓存失败: %w", err)
	}
	return data, nil
}

// InvalidateRanking 批次内新增结果后使排名快照失效
func (r *Redis) InvalidateRanking(ctx context.Context, batchID string) error {
	key := fmt.Sprintf(constants.KeyBatchRanking, batchID)
	return r.client.Del(ctx, key).Err()
}
