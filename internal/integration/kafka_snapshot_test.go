//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/fallout-sim-service/internal/adapter/kafka"
	"github.com/couchcryptid/fallout-sim-service/internal/config"
	"github.com/couchcryptid/fallout-sim-service/internal/domain"
	"github.com/couchcryptid/fallout-sim-service/internal/observability"
	"github.com/couchcryptid/fallout-sim-service/internal/runner"
	"github.com/couchcryptid/fallout-sim-service/internal/simulation"
)

const testSnapshotTopic = "test-scenario-snapshots"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-broker Kafka container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic via the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic")
}

type publishedMessage struct {
	Key     string
	Headers map[string]string
	Value   []byte
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from snapshot topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return publishedMessage{
		Key:     string(msg.Key),
		Headers: headers,
		Value:   msg.Value,
	}
}

// TestScenarioPublishing drives a scenario through the runner against real
// Kafka and verifies the summary and snapshot messages on the topic.
func TestScenarioPublishing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSnapshotTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSnapshotTopic: testSnapshotTopic,
	}

	publisher := kafka.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	sim, err := simulation.New(5)
	require.NoError(t, err)

	r := runner.New(sim, clockwork.NewRealClock(), time.Hour, 0.5, publisher,
		discardLogger(), observability.NewMetricsForTesting())

	summary, err := r.Trigger(ctx, 2, 5)
	require.NoError(t, err)

	snapshot, err := r.Advance(ctx, 0.5)
	require.NoError(t, err)
	require.Equal(t, 0.5, snapshot.ElapsedHours)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSnapshotTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	// First message: the incident summary.
	first := readPublished(ctx, t, consumer)
	assert.Equal(t, summary.IncidentID, first.Key)
	assert.Equal(t, "incident", first.Headers["kind"])
	assert.Equal(t, "CRITICAL", first.Headers["threat_level"])
	_, err = time.Parse(time.RFC3339, first.Headers["triggered_at"])
	assert.NoError(t, err, "triggered_at should be valid RFC3339")

	var gotSummary domain.IncidentSummary
	require.NoError(t, json.Unmarshal(first.Value, &gotSummary))
	assert.Equal(t, 2, gotSummary.GroundZero)
	assert.Equal(t, []float64{125, 500, 1000, 500, 125}, gotSummary.InitialRadiation)
	assert.Equal(t, domain.ThreatCritical, gotSummary.ThreatLevel)

	// Second message: the advance step's snapshot.
	second := readPublished(ctx, t, consumer)
	assert.Equal(t, summary.IncidentID, second.Key)
	assert.Equal(t, "snapshot", second.Headers["kind"])
	assert.Equal(t, "0.5", second.Headers["elapsed_hours"])

	var gotSnapshot domain.ScenarioSnapshot
	require.NoError(t, json.Unmarshal(second.Value, &gotSnapshot))
	assert.Equal(t, 0.5, gotSnapshot.ElapsedHours)
	assert.Equal(t, 950.0, gotSnapshot.RadiationLevels[2])

	// Messages for one incident share a key, so they land on one partition
	// and arrive in order.
	assert.Equal(t, first.Key, second.Key)
}
