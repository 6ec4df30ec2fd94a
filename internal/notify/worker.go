package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/citizen_report/internal/metrics"
	"github.com/shenikar/citizen_report/internal/models"
	"github.com/sirupsen/logrus"
)

const popTimeout = 5 * time.Second

// WorkerOptions - параметры повторной доставки
type WorkerOptions struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Worker забирает события из очереди Redis и доставляет их через Sender
type Worker struct {
	redisClient *redis.Client
	sender      Sender
	logger      *logrus.Logger
	opts        WorkerOptions
}

func NewWorker(redisClient *redis.Client, sender Sender, logger *logrus.Logger, opts WorkerOptions) *Worker {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	return &Worker{
		redisClient: redisClient,
		sender:      sender,
		logger:      logger,
		opts:        opts,
	}
}

// Start запускает горутину обработки очереди до отмены ctx
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting notify worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notify worker.")
				return
			default:
				result, err := w.redisClient.BRPop(ctx, popTimeout, queueKey).Result()
				if err != nil {
					if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop notify event from Redis")
					sleepCtx(ctx, w.opts.BaseDelay)
					continue
				}

				// result[0] - ключ, result[1] - значение
				var event Event
				if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal notify event from Redis")
					continue
				}

				_ = w.Deliver(ctx, event)
			}
		}
	}()
}

// Deliver отправляет событие с экспоненциальной задержкой между попытками.
// Ответы 4xx не повторяются.
func (w *Worker) Deliver(ctx context.Context, event Event) error {
	log := w.logger.WithFields(logrus.Fields{
		"title":     event.Notification.Title,
		"queued_at": event.QueuedAt,
	})
	log.Debug("Processing notify event...")

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = w.opts.BaseDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		err := w.sender.Notify(ctx, event.Notification)
		if err == nil {
			return nil
		}
		var httpErr *models.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status >= 400 && httpErr.Status < 500 {
			return backoff.Permanent(err)
		}
		return err
	}
	onRetry := func(err error, delay time.Duration) {
		log.WithError(err).Warnf("Failed to deliver notification. Retrying in %v. Attempt %d of %d", delay, attempt, w.opts.MaxRetries+1)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(w.opts.MaxRetries)), ctx)
	if err := backoff.RetryNotify(operation, b, onRetry); err != nil {
		metrics.NotifyDeliveries.WithLabelValues(metrics.DeliveryFailed).Inc()
		log.WithError(err).Errorf("Failed to deliver notification after %d attempts.", attempt)
		return err
	}

	metrics.NotifyDeliveries.WithLabelValues(metrics.DeliveryDelivered).Inc()
	log.Info("Notification delivered successfully.")
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
