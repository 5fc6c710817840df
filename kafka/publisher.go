package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	billingdomain "github.com/ndumiso/bizstock/internal/billing/domain"
	catalogdomain "github.com/ndumiso/bizstock/internal/catalog/domain"
	"github.com/ndumiso/bizstock/pkg/logger"
)

// Publisher wraps a Kafka sync producer for billing events
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishInvoiceCreated publishes an invoice created event with tracing
func (p *Publisher) PublishInvoiceCreated(ctx context.Context, invoice *billingdomain.Invoice, items []billingdomain.InvoiceItem) error {
	event := InvoiceCreatedEvent{
		EventID:       uuid.NewString(),
		EventType:     EventTypeInvoiceCreated,
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerID:    invoice.CustomerID,
		TotalAmount:   invoice.TotalAmount,
		Timestamp:     time.Now(),
	}
	for _, item := range items {
		event.Items = append(event.Items, InvoiceItemEvent{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	return p.publish(ctx, TopicInvoiceCreated, event.EventType, event.EventID,
		fmt.Sprintf("invoice_%d", invoice.ID), event,
		attribute.String("invoice.number", invoice.InvoiceNumber),
		attribute.Int("invoice.items", len(items)),
	)
}

// PublishLowStock publishes a low stock event with tracing
func (p *Publisher) PublishLowStock(ctx context.Context, product *catalogdomain.Product, remaining int) error {
	event := LowStockEvent{
		EventID:    uuid.NewString(),
		EventType:  EventTypeLowStock,
		ProductID:  product.ID,
		SKU:        product.SKU,
		Name:       product.Name,
		Remaining:  remaining,
		AlertLevel: product.AlertLevel(),
		Timestamp:  time.Now(),
	}

	return p.publish(ctx, TopicLowStock, event.EventType, event.EventID,
		fmt.Sprintf("product_%d", product.ID), event,
		attribute.String("product.sku", product.SKU),
		attribute.Int("product.remaining", remaining),
	)
}

// publish marshals, traces and sends one event
func (p *Publisher) publish(ctx context.Context, topic, eventType, eventID, key string, event interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(append(attrs,
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		)...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).Err(err).
			Str("topic", topic).
			Str("event_id", eventID).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("messaging.kafka.partition", int64(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	logger.Info(ctx).
		Str("topic", topic).
		Str("event_id", eventID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close shuts down the underlying producer
func (p *Publisher) Close() error {
	return p.producer.Close()
}
