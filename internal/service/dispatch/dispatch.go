// Package dispatch передаёт побочные эффекты переходов (уведомления и оплату)
// внешним системам. Отправка асинхронная: вызывающий получает только факт
// постановки в очередь, итог пишется в StatusStore.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"marketplace/internal/entities"
	"marketplace/pkg/logger"
)

var (
	ErrQueueFull = errors.New("dispatch queue is full")
	ErrStopped   = errors.New("dispatcher is stopped")
)

const (
	defaultSubmitTimeout = 5 * time.Second
	statusSaveTimeout    = time.Second
)

type Config struct {
	Workers       int
	QueueSize     int
	SubmitTimeout time.Duration
}

type job struct {
	offerID      string
	version      int64
	record       entities.DispatchRecord
	notification *entities.NotificationRequest
	payment      *entities.PaymentRequest
}

type Dispatcher struct {
	log      dispatcherLogger
	notifier Notifier
	payments PaymentGateway
	store    StatusStore
	cfg      Config

	queue chan job
	group *errgroup.Group

	mu      sync.RWMutex
	started bool
	closed  bool

	now func() time.Time
}

func New(
	log dispatcherLogger,
	notifier Notifier,
	payments PaymentGateway,
	store StatusStore,
	cfg Config,
) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = defaultSubmitTimeout
	}

	return &Dispatcher{
		log: log.With(
			logger.NewField("component", "side-effect-dispatcher"),
		),
		notifier: notifier,
		payments: payments,
		store:    store,
		cfg:      cfg,
		queue:    make(chan job, cfg.QueueSize),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Start запускает воркеров. ctx служит родителем для отправок и не должен
// отменяться раньше Close, иначе очередь дочитается с отменённым контекстом.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	d.group = &errgroup.Group{}
	for i := 0; i < d.cfg.Workers; i++ {
		d.group.Go(func() error {
			for j := range d.queue {
				QueueDepth.Set(float64(len(d.queue)))
				d.process(ctx, j)
			}
			return nil
		})
	}

	d.log.Info("dispatcher started",
		logger.NewField("workers", d.cfg.Workers),
		logger.NewField("queue_size", d.cfg.QueueSize),
	)
}

// Close перестаёт принимать эффекты и ждёт, пока воркеры разберут очередь.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	group := d.group
	d.mu.Unlock()

	if group == nil {
		return nil
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("dispatcher workers: %w", err)
	}

	d.log.Info("dispatcher stopped")
	return nil
}

func (d *Dispatcher) Notify(ctx context.Context, request entities.NotificationRequest) entities.DispatchRecord {
	return d.enqueue(ctx, job{
		offerID:      request.OfferID,
		version:      request.Version,
		record:       d.newRecord(entities.DispatchNotification, request.RecipientID),
		notification: &request,
	})
}

func (d *Dispatcher) SettlePayment(ctx context.Context, request entities.PaymentRequest) entities.DispatchRecord {
	return d.enqueue(ctx, job{
		offerID: request.OfferID,
		version: request.Version,
		record:  d.newRecord(entities.DispatchPayment, request.PayeeID),
		payment: &request,
	})
}

func (d *Dispatcher) GetStatus(ctx context.Context, offerID string, version int64) ([]entities.DispatchRecord, error) {
	records, err := d.store.List(ctx, offerID, version)
	if err != nil {
		return nil, fmt.Errorf("list dispatch records: %w", err)
	}
	return records, nil
}

func (d *Dispatcher) newRecord(kind entities.DispatchKind, recipientID string) entities.DispatchRecord {
	return entities.DispatchRecord{
		ID:          uuid.NewString(),
		Kind:        kind,
		RecipientID: recipientID,
		State:       entities.DispatchQueued,
		UpdatedAt:   d.now(),
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, j job) entities.DispatchRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return d.reject(ctx, j, ErrStopped)
	}

	// queued пишется до отправки в канал, иначе он может затереть итог воркера
	d.save(ctx, j.offerID, j.version, j.record)

	select {
	case d.queue <- j:
		QueueDepth.Set(float64(len(d.queue)))
		SubmissionsTotal.WithLabelValues(j.record.Kind.String(), entities.DispatchQueued.String()).Inc()
		return j.record
	default:
		return d.reject(ctx, j, ErrQueueFull)
	}
}

func (d *Dispatcher) reject(ctx context.Context, j job, reason error) entities.DispatchRecord {
	j.record.State = entities.DispatchRejected
	j.record.Error = reason.Error()

	SubmissionsTotal.WithLabelValues(j.record.Kind.String(), entities.DispatchRejected.String()).Inc()
	d.log.Warn("side effect rejected",
		logger.NewField("offer_id", j.offerID),
		logger.NewField("version", j.version),
		logger.NewField("kind", j.record.Kind.String()),
		logger.NewField("recipient_id", j.record.RecipientID),
		logger.NewField("error", reason),
	)

	d.save(ctx, j.offerID, j.version, j.record)
	return j.record
}

// save пишет статус под своим таймаутом и без отмены родителя: запрос клиента
// или таймаут отправки могут закончиться раньше записи. Ошибка хранилища
// только логируется, на сам эффект она не влияет.
func (d *Dispatcher) save(parent context.Context, offerID string, version int64, record entities.DispatchRecord) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), statusSaveTimeout)
	defer cancel()

	if err := d.store.Save(ctx, offerID, version, record); err != nil {
		d.log.Error("save dispatch record",
			logger.NewField("offer_id", offerID),
			logger.NewField("record_id", record.ID),
			logger.NewField("state", record.State.String()),
			logger.NewField("error", err),
		)
	}
}

func (d *Dispatcher) process(parent context.Context, j job) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("side effect panic",
				logger.NewField("offer_id", j.offerID),
				logger.NewField("kind", j.record.Kind.String()),
				logger.NewField("recover", r),
				logger.NewField("stack", debug.Stack()),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(parent, d.cfg.SubmitTimeout)
	defer cancel()

	start := time.Now()
	var err error
	switch {
	case j.notification != nil:
		err = d.notifier.Publish(ctx, *j.notification)
	case j.payment != nil:
		err = d.payments.Settle(ctx, *j.payment)
	default:
		err = errors.New("empty dispatch job")
	}
	SubmissionDuration.WithLabelValues(j.record.Kind.String()).Observe(time.Since(start).Seconds())

	record := j.record
	record.UpdatedAt = d.now()
	if err != nil {
		record.State = entities.DispatchFailed
		record.Error = err.Error()
		d.log.Error("side effect failed",
			logger.NewField("offer_id", j.offerID),
			logger.NewField("version", j.version),
			logger.NewField("kind", record.Kind.String()),
			logger.NewField("recipient_id", record.RecipientID),
			logger.NewField("error", err),
		)
	} else {
		record.State = entities.DispatchAcknowledged
	}
	SubmissionsTotal.WithLabelValues(record.Kind.String(), record.State.String()).Inc()

	d.save(parent, j.offerID, j.version, record)
}
