//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"marketplace/internal/gateway/grpc/payment"
	"marketplace/internal/gateway/kafka/notification"
	"marketplace/internal/handlers/tasks/rider_presence_expiry"
	"marketplace/internal/pkg/config"
	"marketplace/internal/pkg/factory/notification_recipients"
	"marketplace/internal/pkg/factory/rider_status_handle"

	offerRepo "marketplace/internal/repository/offer"
	riderRepo "marketplace/internal/repository/rider"
	dispatchService "marketplace/internal/service/dispatch"
	offerService "marketplace/internal/service/offer"
	riderService "marketplace/internal/service/rider"
	riderStatusService "marketplace/internal/service/rider_status"

	"marketplace/pkg/logger"
	"marketplace/pkg/querier"
	"marketplace/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/go-redis/redis/v8"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

// InitializeApplication для HTTP сервиса (cmd/service).
// redisClient может быть nil, тогда статусы отправок хранятся в памяти.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	producer sarama.SyncProducer,
	redisClient *redis.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOfferRepository,
		provideRiderRepository,
		provideStatusStore,

		provideServiceRider,
		providePaymentGateway,
		provideNotificationGateway,
		provideDispatcher,
		notification_recipients.New,
		provideServiceOffer,

		provideRiderPresenceExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOffer), new(*offerService.Service)),
		wire.Bind(new(ServiceRider), new(*riderService.Rider)),

		wire.Bind(new(offerService.Repository), new(*offerRepo.Repository)),
		wire.Bind(new(offerService.RiderService), new(*riderService.Rider)),
		wire.Bind(new(offerService.Dispatcher), new(*dispatchService.Dispatcher)),
		wire.Bind(new(offerService.NotificationFactory), new(*notification_recipients.NotificationFactory)),
		wire.Bind(new(riderService.Repository), new(*riderRepo.Repository)),

		wire.Bind(new(dispatchService.Notifier), new(*notification.Gateway)),
		wire.Bind(new(dispatchService.PaymentGateway), new(*payment.PaymentGateway)),

		wire.Bind(new(offerRepo.Querier), new(*querier.Querier)),
		wire.Bind(new(offerRepo.TxManager), new(*tx.Manager)),
		wire.Bind(new(riderRepo.Querier), new(*querier.Querier)),

		wire.Bind(new(rider_presence_expiry.Service), new(*riderService.Rider)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-rider-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideQuerier,

		provideRiderRepository,
		provideServiceRider,

		provideStatusHandlerFactory,
		provideRiderStatusService,

		wire.Bind(new(riderService.Repository), new(*riderRepo.Repository)),
		wire.Bind(new(riderRepo.Querier), new(*querier.Querier)),
		wire.Bind(new(riderStatusService.HandlerFactory), new(*rider_status_handle.StatusHandlerFactory)),
		wire.Bind(new(riderStatusService.RiderService), new(*riderService.Rider)),
		wire.Bind(new(rider_status_handle.PresenceService), new(*riderService.Rider)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
