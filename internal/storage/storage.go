package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
)

// Storage 聚合全部存储组件。各组件按配置逐个初始化，
// 任意组件初始化失败时整体失败并回收已建立的连接。
type Storage struct {
	MySQL    *MySQL
	Redis    *Redis
	MinIO    *MinIO
	RabbitMQ *RabbitMQ
	Qdrant   *Qdrant

	log zerolog.Logger
}

// NewStorage 按配置初始化全部存储组件
func NewStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	s := &Storage{log: log.With().Str("component", "storage").Logger()}

	var err error
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if s.MySQL, err = NewMySQL(cfg.MySQL); err != nil {
		return nil, fmt.Errorf("初始化MySQL失败: %w", err)
	}
	s.log.Info().Str("host", cfg.MySQL.Host).Msg("MySQL就绪")

	if s.Redis, err = NewRedis(ctx, cfg.Redis); err != nil {
		return nil, fmt.Errorf("初始化Redis失败: %w", err)
	}
	s.log.Info().Str("address", cfg.Redis.Address).Msg("Redis就绪")

	if s.MinIO, err = NewMinIO(ctx, cfg.MinIO); err != nil {
		return nil, fmt.Errorf("初始化MinIO失败: %w", err)
	}
	s.log.Info().Str("endpoint", cfg.MinIO.Endpoint).Msg("MinIO就绪")

	if s.RabbitMQ, err = NewRabbitMQ(cfg.RabbitMQ, log); err != nil {
		return nil, fmt.Errorf("初始化RabbitMQ失败: %w", err)
	}
	s.log.Info().Msg("RabbitMQ就绪")

	if s.Qdrant, err = NewQdrant(cfg.Qdrant); err != nil {
		return nil, fmt.Errorf("初始化Qdrant失败: %w", err)
	}
	s.log.Info().Str("endpoint", cfg.Qdrant.Endpoint).Str("collection", cfg.Qdrant.Collection).Msg("Qdrant就绪")

	return s, nil
}

// Close 释放所有已建立的连接，逐个记录失败但不中断
func (s *Storage) Close() {
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			s.log.Warn().Err(err).Msg("关闭RabbitMQ失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.log.Warn().Err(err).Msg("关闭Redis失败")
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			s.log.Warn().Err(err).Msg("关闭MySQL失败")
		}
	}
}
