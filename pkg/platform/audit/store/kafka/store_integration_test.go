//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	platformkafka "eligibility/internal/platform/kafka"
	audit "eligibility/pkg/platform/audit"
	"eligibility/pkg/platform/audit/store/kafka"
	"eligibility/pkg/testutil/containers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"
)

type KafkaStoreSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *KafkaStoreSuite) TestAppendIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := platformkafka.Config{Brokers: s.redpanda.Brokers, Topic: "audit-" + uuid.NewString()}
	client, err := platformkafka.NewClient(cfg)
	s.Require().NoError(err)
	defer client.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(platformkafka.EnsureTopic(ctx, client, cfg, logger))
	// second call hits TopicAlreadyExists
	s.Require().NoError(platformkafka.EnsureTopic(ctx, client, cfg, logger))

	store := kafka.New(client, cfg.Topic)
	rec := audit.NewBuilder("req-it", audit.APIApplicationServer).Response(200, "[]", []byte("{}")).Build()
	s.Require().NoError(store.Append(ctx, rec))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())
	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal("req-it", string(records[0].Key))

	var msg kafka.Message
	s.Require().NoError(json.Unmarshal(records[0].Value, &msg))
	s.True(msg.Success)
}
