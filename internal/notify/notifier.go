package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/citizen_report/internal/metrics"
	"github.com/shenikar/citizen_report/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	queueKey = "notify_events"
)

// Sender доставляет уведомление на сервер рассылки
type Sender interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// Event - уведомление, поставленное в очередь Redis
type Event struct {
	Notification models.Notification `json:"notification"`
	QueuedAt     time.Time           `json:"queued_at"`
}

// DirectNotifier отправляет уведомление сразу, в рамках вызова
type DirectNotifier struct {
	sender Sender
	logger *logrus.Logger
}

func NewDirectNotifier(sender Sender, logger *logrus.Logger) *DirectNotifier {
	return &DirectNotifier{
		sender: sender,
		logger: logger,
	}
}

func (n *DirectNotifier) Notify(ctx context.Context, notification models.Notification) error {
	if err := n.sender.Notify(ctx, notification); err != nil {
		metrics.NotifyDeliveries.WithLabelValues(metrics.DeliveryFailed).Inc()
		return fmt.Errorf("notify: could not deliver notification: %w", err)
	}
	metrics.NotifyDeliveries.WithLabelValues(metrics.DeliveryDelivered).Inc()
	n.logger.WithField("title", notification.Title).Debug("Notification delivered")
	return nil
}

// RedisQueueNotifier откладывает доставку: кладет событие в очередь Redis,
// откуда его забирает Worker
type RedisQueueNotifier struct {
	redisClient *redis.Client
	now         func() time.Time
}

func NewRedisQueueNotifier(client *redis.Client) *RedisQueueNotifier {
	return &RedisQueueNotifier{
		redisClient: client,
		now:         time.Now,
	}
}

// Notify публикует событие в очередь Redis
func (p *RedisQueueNotifier) Notify(ctx context.Context, notification models.Notification) error {
	payload, err := json.Marshal(Event{Notification: notification, QueuedAt: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal notify event: %w", err)
	}

	// LPUSH добавляет событие в левую часть списка, worker забирает справа
	if err := p.redisClient.LPush(ctx, queueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notify event to Redis: %w", err)
	}
	metrics.NotifyDeliveries.WithLabelValues(metrics.DeliveryQueued).Inc()
	return nil
}
