package service

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"foodcart/foodcart-svc/internal/domain"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer warms the place cache for freshly registered orders by ranking them
// ahead of the operator.
type Consumer struct {
	Reader MessageReader
	Orders OrderRepository
	Ranker RankerInterface
}

func NewConsumer(reader MessageReader, orders OrderRepository, ranker RankerInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Orders: orders,
		Ranker: ranker,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Info("Starting places warmer consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Places warmer consumer stopped")
				return
			}
			log.WithError(err).Error("Error reading message")
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.WithError(err).Error("Error unmarshaling message")
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.OrderRegisteredEvent {
		return
	}
	logger := log.WithField("order_id", event.OrderID)

	order, err := c.Orders.GetOrder(ctx, event.OrderID)
	if err != nil {
		logger.WithError(err).Error("Error loading order")
		return
	}

	ranking, err := c.Ranker.Rank(ctx, order)
	if err != nil {
		logger.WithError(err).Error("Error ranking restaurants")
		return
	}

	resolved := 0
	for _, candidate := range ranking {
		if !candidate.Unresolved() {
			resolved++
		}
	}
	logger.WithFields(log.Fields{
		"candidates": len(ranking),
		"resolved":   resolved,
	}).Info("Warmed places for order")
}
