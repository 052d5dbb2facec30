package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"marketplace/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task определяет интерфейс для фоновых задач, которые могут выполняться периодически.
type Task interface {
	// TTL возвращает интервал между выполнениями задачи.
	TTL() time.Duration

	// Do выполняет логику задачи.
	Do(context.Context) error

	// Info возвращает читаемое описание задачи для логгирования и метрик.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker управляет выполнением набора фоновых задач.
type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи и запускает их периодическое выполнение.
//
//  1. Каждая задача один раз выполняется синхронно. Ошибка или паника
//     на этом шаге возвращается из New, Worker не создаётся.
//  2. Дальше задачи крутятся в фоне с интервалом TTL, пока не отменён ctx.
//     Ошибки и паники периодических запусков только логируются.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			if err := worker.run(initCtx, task); err != nil {
				return fmt.Errorf("task %q: %w", task.Info(), err)
			}
			return nil
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.runPeriodically(ctx, task)
		}()
	}

	return worker, nil
}

// Wait дожидается остановки всех задач после отмены ctx, переданного в New.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runPeriodically(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Info("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.C:
			if err := w.run(ctx, task); err != nil {
				w.log.Error("Background task failed",
					logger.NewField("task", task.Info()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

// run выполняет задачу один раз, превращая панику в ошибку.
func (w *Worker) run(ctx context.Context, task Task) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
			err = fmt.Errorf("panic: %v", r)
		}

		result := "ok"
		if err != nil {
			result = "error"
		}
		TaskRunsTotal.WithLabelValues(task.Info(), result).Inc()
		TaskDuration.WithLabelValues(task.Info()).Observe(time.Since(start).Seconds())
	}()

	return task.Do(ctx)
}
