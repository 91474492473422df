package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/constants"
)

// ScanTaskMessage 扫描任务消息体。消费者据此从对象存储取回简历并评分。
type ScanTaskMessage struct {
	BatchID   string `json:"batch_id"`
	ObjectKey string `json:"object_key"`
	Filename  string `json:"filename"`
}

// ScanTaskHandler 处理单条扫描任务。返回错误时消息会被重新入队一次。
type ScanTaskHandler func(ctx context.Context, task ScanTaskMessage) error

// RabbitMQ 消息队列封装，负责扫描任务的投递与消费
type RabbitMQ struct {
	conn    *amqp.Connection
	pubCh   *amqp.Channel
	pubMu   sync.Mutex
	workers int
	log     zerolog.Logger
}

// NewRabbitMQ 建立连接并声明交换机、队列与绑定
func NewRabbitMQ(cfg config.RabbitMQConfig, log zerolog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("打开RabbitMQ通道失败: %w", err)
	}

	if err := declareScanTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	workers := cfg.ConsumerWorkers
	if workers <= 0 {
		workers = 1
	}
	return &RabbitMQ{
		conn:    conn,
		pubCh:   ch,
		workers: workers,
		log:     log.With().Str("component", "rabbitmq").Logger(),
	}, nil
}

func declareScanTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(constants.ScanExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明交换机失败: %w", err)
	}
	if _, err := ch.QueueDeclare(constants.ScanTaskQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明队列失败: %w", err)
	}
	if err := ch.QueueBind(constants.ScanTaskQueue, constants.ScanTaskRoutingKey, constants.ScanExchange, false, nil); err != nil {
		return fmt.Errorf("绑定队列失败: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()
	if r.pubCh != nil {
		r.pubCh.Close()
	}
	return r.conn.Close()
}

// PublishScanTask 以持久化消息投递一条扫描任务
func (r *RabbitMQ) PublishScanTask(ctx context.Context, task ScanTaskMessage) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("序列化扫描任务失败: %w", err)
	}

	r.pubMu.Lock()
	defer r.pubMu.Unlock()
	err = r.pubCh.PublishWithContext(ctx,
		constants.ScanExchange,
		constants.ScanTaskRoutingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("投递扫描任务失败: %w", err)
	}
	return nil
}

// StartScanConsumers 启动扫描任务消费者，阻塞直至ctx取消。
// 单条任务失败不会中断消费：首次失败重新入队，再次失败则丢弃并记录。
func (r *RabbitMQ) StartScanConsumers(ctx context.Context, handler ScanTaskHandler) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("打开消费者通道失败: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(r.workers, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	deliveries, err := ch.Consume(constants.ScanTaskQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("订阅队列失败: %w", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			log := r.log.With().Int("worker_id", workerID).Logger()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					r.handleDelivery(ctx, log, d, handler)
				}
			}
		}(i)
	}
	wg.Wait()
	return nil
}

func (r *RabbitMQ) handleDelivery(ctx context.Context, log zerolog.Logger, d amqp.Delivery, handler ScanTaskHandler) {
	var task ScanTaskMessage
	if err := json.Unmarshal(d.Body, &task); err != nil {
		log.Error().Err(err).Msg("扫描任务消息格式错误，丢弃")
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, task); err != nil {
		requeue := !d.Redelivered
		log.Error().Err(err).
			Str("batch_id", task.BatchID).
			Str("filename", task.Filename).
			Bool("requeue", requeue).
			Msg("处理扫描任务失败")
		_ = d.Nack(false, requeue)
		return
	}

	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Str("filename", task.Filename).Msg("确认消息失败")
	}
}
