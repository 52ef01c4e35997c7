package kpro

import (
	"context"
	"errors"
	"testing"
	"time"
)

func apiVersionsOKResponse() *APIVersionsResponse {
	resp := &APIVersionsResponse{Err: ErrNoError}
	for key, r := range clientVersionRanges {
		resp.APIVersions = append(resp.APIVersions, &APIVersionsResponseBlock{
			APIKey:     key,
			MinVersion: r.minVersion,
			MaxVersion: r.maxVersion,
		})
	}
	return resp
}

func dialMockBroker(t *testing.T, mb *mockBroker) (*Broker, context.CancelFunc) {
	t.Helper()
	mb.Returns(apiVersionsOKResponse())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	b, err := Dial(ctx, mb.Endpoint(), NewConfig(), mb.BrokerID())
	if err != nil {
		cancel()
		t.Fatalf("Dial: %v", err)
	}
	return b, cancel
}

func TestDialNegotiatesVersionsAndSendSyncRoundTrips(t *testing.T) {
	mb := newMockBroker(t, 1)
	defer mb.Close()

	b, cancel := dialMockBroker(t, mb)
	defer cancel()
	defer func() { _ = b.Close() }()

	if got := b.ID(); got != 1 {
		t.Fatalf("ID() = %d, want 1", got)
	}
	if _, ok := b.APIVersionRange(apiKeyMetadata); !ok {
		t.Fatal("expected apiKeyMetadata to be present in negotiated versions")
	}

	mb.Returns(&MetadataResponse{
		Brokers: []*brokerRef{{id: 1, host: "127.0.0.1", port: int32(mb.port)}},
		Topics: []*TopicMetadata{
			{Name: "orders", Partitions: []*PartitionMetadata{{ID: 0, Leader: 1}}},
		},
	})

	resp, err := b.SendSync(context.Background(), &Request{
		Body:        &MetadataRequest{Topics: []string{"orders"}},
		NewResponse: func() ProtocolBody { return new(MetadataResponse) },
	})
	if err != nil {
		t.Fatalf("SendSync: %v", err)
	}

	meta, ok := resp.Body.(*MetadataResponse)
	if !ok {
		t.Fatalf("resp.Body is %T, want *MetadataResponse", resp.Body)
	}
	if len(meta.Topics) != 1 || meta.Topics[0].Name != "orders" {
		t.Fatalf("unexpected metadata response: %+v", meta)
	}
}

func TestSendSyncUpdatesBrokerMetrics(t *testing.T) {
	mb := newMockBroker(t, 5)
	defer mb.Close()

	b, cancel := dialMockBroker(t, mb)
	defer cancel()
	defer func() { _ = b.Close() }()

	mb.Returns(&MetadataResponse{
		Topics: []*TopicMetadata{{Name: "orders", Partitions: nil}},
	})
	if _, err := b.SendSync(context.Background(), &Request{
		Body:        &MetadataRequest{Topics: []string{"orders"}},
		NewResponse: func() ProtocolBody { return new(MetadataResponse) },
	}); err != nil {
		t.Fatalf("SendSync: %v", err)
	}

	validators := newMetricValidators()
	validators.registerForAllBrokers(b.ID(), minCountMeterValidator("request-rate", 1))
	validators.registerForAllBrokers(b.ID(), minCountMeterValidator("response-rate", 1))
	validators.registerForAllBrokers(b.ID(), minCountHistogramValidator("request-size", 1))
	validators.registerForAllBrokers(b.ID(), minCountHistogramValidator("response-size", 1))
	validators.run(t, b.conf.MetricRegistry)
}

func TestSendSyncNoAckDoesNotWaitForAResponse(t *testing.T) {
	mb := newMockBroker(t, 2)
	defer mb.Close()

	b, cancel := dialMockBroker(t, mb)
	defer cancel()
	defer func() { _ = b.Close() }()

	resp, err := b.SendSync(context.Background(), &Request{
		Body:  &MetadataRequest{Topics: []string{"orders"}},
		NoAck: true,
	})
	if err != nil {
		t.Fatalf("SendSync: %v", err)
	}
	if resp.Body != nil {
		t.Fatalf("expected no response body for a NoAck request, got %+v", resp.Body)
	}
}

func TestCloseIsIdempotentAndFailsLaterSends(t *testing.T) {
	mb := newMockBroker(t, 3)
	defer mb.Close()

	b, cancel := dialMockBroker(t, mb)
	defer cancel()

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	_, err := b.SendSync(context.Background(), &Request{
		Body:        &MetadataRequest{Topics: []string{"orders"}},
		NewResponse: func() ProtocolBody { return new(MetadataResponse) },
	})
	if !errors.Is(err, ErrClosedConnection) {
		t.Fatalf("got %v, want ErrClosedConnection", err)
	}
}

func TestDialFallsBackWhenBrokerNeverAnswersAPIVersions(t *testing.T) {
	mb := newMockBroker(t, 4)
	defer mb.Close()

	// No queued response for the ApiVersionsRequest: negotiate() will see
	// its context expire and fall back to kafka09Range for every API this
	// client speaks, matching a pre-0.10 broker that never answers it.
	conf := NewConfig()
	conf.Net.RequestTimeout = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	b, err := Dial(ctx, mb.Endpoint(), conf, mb.BrokerID())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer func() { _ = b.Close() }()

	vr, ok := b.APIVersionRange(apiKeyMetadata)
	if !ok || vr != kafka09Range(apiKeyMetadata) {
		t.Fatalf("got %+v, ok=%v, want the kafka09Range fallback", vr, ok)
	}
}
