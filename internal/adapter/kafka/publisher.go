// Package kafka publishes incident summaries and scenario snapshots to a
// sink topic so downstream services (dashboards, alerting) can consume them
// without polling the HTTP API.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/fallout-sim-service/internal/config"
	"github.com/couchcryptid/fallout-sim-service/internal/domain"
)

// Publisher produces scenario messages to the snapshot topic. It implements
// runner.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured snapshot topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSnapshotTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishSummary publishes the incident summary emitted by a trigger.
func (p *Publisher) PublishSummary(ctx context.Context, summary domain.IncidentSummary) error {
	msg, err := summaryToMessage(summary)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// PublishSnapshot publishes one advance step's snapshot.
func (p *Publisher) PublishSnapshot(ctx context.Context, snapshot domain.ScenarioSnapshot) error {
	msg, err := snapshotToMessage(snapshot)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// summaryToMessage marshals an IncidentSummary into a Kafka message keyed by
// incident ID.
func summaryToMessage(summary domain.IncidentSummary) (kafkago.Message, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize incident summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(summary.IncidentID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte("incident")},
			{Key: "threat_level", Value: []byte(summary.ThreatLevel.String())},
			{Key: "triggered_at", Value: []byte(summary.TriggeredAt.Format(time.RFC3339))},
		},
	}, nil
}

// snapshotToMessage marshals a ScenarioSnapshot into a Kafka message keyed by
// incident ID, so all steps of one incident land on the same partition in
// order.
func snapshotToMessage(snapshot domain.ScenarioSnapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize scenario snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snapshot.IncidentID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte("snapshot")},
			{Key: "threat_level", Value: []byte(snapshot.ThreatLevel.String())},
			{Key: "elapsed_hours", Value: []byte(strconv.FormatFloat(snapshot.ElapsedHours, 'g', -1, 64))},
		},
	}, nil
}
