// Package kafka builds the franz-go client used by the audit sink and
// bootstraps its topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Config holds producer settings.
type Config struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
	ProduceTimeout    time.Duration
}

// NewClient creates a producer-only client with Topic as its default topic.
func NewClient(cfg Config) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression(), kgo.NoCompression()),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	if cfg.ProduceTimeout > 0 {
		opts = append(opts, kgo.ProduceRequestTimeout(cfg.ProduceTimeout))
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// EnsureTopic creates the topic if it does not exist yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, cfg Config, logger *slog.Logger) error {
	partitions := cfg.Partitions
	if partitions <= 0 {
		partitions = 1
	}
	rf := cfg.ReplicationFactor
	if rf <= 0 {
		rf = 1
	}

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, partitions, rf, nil, cfg.Topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}
	if resp.Err != nil {
		if errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create topic %s: %w", cfg.Topic, resp.Err)
	}
	logger.InfoContext(ctx, "kafka topic created", "topic", cfg.Topic, "partitions", partitions)
	return nil
}
