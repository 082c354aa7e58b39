// Package kafka publishes audit records to a Kafka topic as JSON, keyed by
// request id.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	audit "eligibility/pkg/platform/audit"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the subset of *kgo.Client the store needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Store implements audit.Store by producing each record synchronously.
// It runs on publisher workers, so the request path never waits on the broker.
type Store struct {
	producer Producer
	topic    string
}

// New creates a Kafka audit store. An empty topic uses the client's default.
func New(producer Producer, topic string) *Store {
	return &Store{producer: producer, topic: topic}
}

// Message is the wire shape of one audit record.
type Message struct {
	RequestID       string  `json:"requestId"`
	APIName         string  `json:"apiName"`
	Method          string  `json:"method"`
	URL             string  `json:"url"`
	RequestHeaders  string  `json:"requestHeaders"`
	RequestBody     *string `json:"requestBody"`
	ResponseStatus  *int    `json:"responseStatus"`
	ResponseHeaders *string `json:"responseHeaders"`
	ResponseBody    *string `json:"responseBody"`
	ExecutionTimeMs int64   `json:"executionTimeMs"`
	Success         bool    `json:"success"`
	ErrorMessage    *string `json:"errorMessage"`
	ExceptionName   *string `json:"exceptionName"`
	CorrelationID   *string `json:"correlationId"`
	UserID          string  `json:"userId"`
	CreatedAt       string  `json:"createdAt"`
}

func toMessage(r audit.Record) Message {
	return Message{
		RequestID:       r.RequestID,
		APIName:         string(r.APIName),
		Method:          r.Method,
		URL:             r.URL,
		RequestHeaders:  r.RequestHeaders,
		RequestBody:     r.RequestBody,
		ResponseStatus:  r.ResponseStatus,
		ResponseHeaders: r.ResponseHeaders,
		ResponseBody:    r.ResponseBody,
		ExecutionTimeMs: r.ExecutionTimeMs,
		Success:         r.Success,
		ErrorMessage:    r.ErrorMessage,
		ExceptionName:   r.ExceptionName,
		CorrelationID:   r.CorrelationID,
		UserID:          r.UserID,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (s *Store) Append(ctx context.Context, r audit.Record) error {
	payload, err := json.Marshal(toMessage(r))
	if err != nil {
		return fmt.Errorf("marshal audit message: %w", err)
	}
	rec := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(r.RequestID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "api_name", Value: []byte(r.APIName)},
		},
	}
	if err := s.producer.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce audit message: %w", err)
	}
	return nil
}
