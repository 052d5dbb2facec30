package app

import (
	"context"

	"marketplace/internal/gateway/grpc/payment"
	"marketplace/internal/gateway/kafka/notification"
	offer_dispatch_get "marketplace/internal/handlers/rest/offer_dispatch_get"
	offer_get "marketplace/internal/handlers/rest/offer_get"
	offer_history_get "marketplace/internal/handlers/rest/offer_history_get"
	offer_post "marketplace/internal/handlers/rest/offer_post"
	offer_transition_post "marketplace/internal/handlers/rest/offer_transition_post"
	offers_available_get "marketplace/internal/handlers/rest/offers_available_get"
	rider_get "marketplace/internal/handlers/rest/rider_get"
	rider_post "marketplace/internal/handlers/rest/rider_post"
	rider_put "marketplace/internal/handlers/rest/rider_put"
	riders_get "marketplace/internal/handlers/rest/riders_get"
	"marketplace/internal/handlers/tasks/rider_presence_expiry"
	"marketplace/internal/pkg/config"
	"marketplace/internal/pkg/factory/rider_status_handle"

	dispatchRepo "marketplace/internal/repository/dispatch"
	"marketplace/internal/repository/memory"
	offerRepo "marketplace/internal/repository/offer"
	riderRepo "marketplace/internal/repository/rider"
	dispatchService "marketplace/internal/service/dispatch"
	offerService "marketplace/internal/service/offer"
	riderService "marketplace/internal/service/rider"
	riderStatusService "marketplace/internal/service/rider_status"

	"marketplace/pkg/background"
	"marketplace/pkg/logger"
	"marketplace/pkg/querier"
	"marketplace/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

type Application struct {
	ServiceOffer      ServiceOffer
	ServiceRider      ServiceRider
	Dispatcher        *dispatchService.Dispatcher
	BackgroundWorkers *background.Worker
}

type ServiceOffer interface {
	offer_post.Service
	offer_transition_post.Service
	offer_get.Service
	offer_history_get.Service
	offer_dispatch_get.Service
	offers_available_get.Service
}

type ServiceRider interface {
	rider_post.Service
	rider_put.Service
	rider_get.Service
	riders_get.Service
}

type KafkaWorkerApp struct {
	RiderStatusService *riderStatusService.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOfferRepository(querier offerRepo.Querier, txManager offerRepo.TxManager) *offerRepo.Repository {
	return offerRepo.New(querier, txManager)
}

func provideRiderRepository(querier riderRepo.Querier) *riderRepo.Repository {
	return riderRepo.New(querier)
}

func provideStatusStore(redisClient *redis.Client, cfg *config.Config) dispatchService.StatusStore {
	if redisClient == nil {
		return memory.NewDispatchStatusStore()
	}
	return dispatchRepo.New(redisClient, cfg.Redis.StatusTTL)
}

func provideServiceRider(repository riderService.Repository) *riderService.Rider {
	return riderService.New(repository)
}

func providePaymentGateway(conn *grpc.ClientConn) *payment.PaymentGateway {
	return payment.New(payment.NewClient(conn))
}

func provideNotificationGateway(producer sarama.SyncProducer, cfg *config.Config) *notification.Gateway {
	return notification.New(producer, cfg.Kafka.NotificationsTopic)
}

func provideDispatcher(
	log logger.Logger,
	notifier dispatchService.Notifier,
	payments dispatchService.PaymentGateway,
	store dispatchService.StatusStore,
	cfg *config.Config,
) *dispatchService.Dispatcher {
	return dispatchService.New(log, notifier, payments, store, dispatchService.Config{
		Workers:       cfg.Dispatch.Workers,
		QueueSize:     cfg.Dispatch.QueueSize,
		SubmitTimeout: cfg.Dispatch.SubmitTimeout,
	})
}

func provideServiceOffer(
	log logger.Logger,
	repository offerService.Repository,
	riderService offerService.RiderService,
	dispatcher offerService.Dispatcher,
	notifications offerService.NotificationFactory,
) *offerService.Service {
	return offerService.New(log, repository, riderService, dispatcher, notifications)
}

func provideStatusHandlerFactory(presenceService rider_status_handle.PresenceService) *rider_status_handle.StatusHandlerFactory {
	return rider_status_handle.NewStatusHandlerFactory(presenceService)
}

// provideRiderStatusService создает сервис для обработки событий присутствия из Kafka
func provideRiderStatusService(
	riderService riderStatusService.RiderService,
	handlerFactory riderStatusService.HandlerFactory,
) *riderStatusService.Service {
	return riderStatusService.New(riderService, handlerFactory)
}

func provideRiderPresenceExpiryTask(
	log logger.Logger,
	riderService rider_presence_expiry.Service,
	cfg *config.Config,
) *rider_presence_expiry.RiderPresenceExpiry {
	return rider_presence_expiry.NewRiderPresenceExpiry(
		log,
		riderService,
		cfg.Tasks.RidersPresenceCheckInterval,
		cfg.Tasks.RiderPresenceTTL,
	)
}

func provideTaskList(
	riderPresenceExpiryTask *rider_presence_expiry.RiderPresenceExpiry,
) []background.Task {
	return []background.Task{
		riderPresenceExpiryTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
