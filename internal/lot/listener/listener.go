package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/lot"
	"github.com/nakula/catalog-admin-service/pkg/broker"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

// LotListener consumes order events and draws down lot quantities for
// lot-tracked SKUs.
type LotListener struct {
	consumer *broker.KafkaConsumer
	uc       lot.UseCase
	logger   logger.ZapLogger
}

func NewLotListener(consumer *broker.KafkaConsumer, uc lot.UseCase, logger logger.ZapLogger) *LotListener {
	return &LotListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *LotListener) Start(ctx context.Context) {
	l.logger.Info("Starting Lot Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Lot Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID         string             `json:"id"`
	MerchantID string             `json:"merchant_id"`
	Items      []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string  `json:"product_id"`
	SkuID     *string `json:"sku_id"`
	Quantity  float64 `json:"quantity"`
}

func (l *LotListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	for _, item := range event.Payload.Items {
		// Only SKU-level sales can be lot-tracked.
		if item.SkuID == nil {
			continue
		}

		err := l.uc.DrawDownForSku(ctx, event.Payload.MerchantID, *item.SkuID, item.Quantity, event.Payload.ID)
		if err != nil {
			l.logger.Error("Failed to draw down lot for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("sku_id", *item.SkuID),
				zap.Error(err))
		}
	}
}
