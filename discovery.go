package kpro

import (
	"context"
	"time"
)

// DiscoverPartitionLeader issues a Metadata request over conn and resolves
// the current leader endpoint for topic/partition. Zero matching
// topic/partition entries is ErrUnknownTopicOrPartition; more than one
// (a malformed or duplicated response) is ErrProtocolError.
func DiscoverPartitionLeader(ctx context.Context, conn *Broker, topic string, partition int32) (Endpoint, error) {
	start := time.Now()
	if r := conn.conf.MetricRegistry; r != nil {
		getOrRegisterTopicMeter("metadata-lookup-rate", topic, r).Mark(1)
	}

	resp, err := conn.SendSync(ctx, &Request{
		Body:        &MetadataRequest{Topics: []string{topic}},
		NewResponse: func() ProtocolBody { return new(MetadataResponse) },
	})
	if err != nil {
		return Endpoint{}, err
	}

	if r := conn.conf.MetricRegistry; r != nil {
		getOrRegisterTopicHistogram("metadata-lookup-latency-in-ms", topic, r).Update(time.Since(start).Milliseconds())
	}

	meta, ok := resp.Body.(*MetadataResponse)
	if !ok {
		return Endpoint{}, ErrProtocolError
	}

	return resolvePartitionLeader(meta, topic, partition)
}

// resolvePartitionLeader is the pure matching logic behind
// DiscoverPartitionLeader, split out so it can be exercised directly
// against a hand-built MetadataResponse.
func resolvePartitionLeader(meta *MetadataResponse, topic string, partition int32) (Endpoint, error) {
	var matches []*PartitionMetadata
	var owningTopic *TopicMetadata
	for _, t := range meta.Topics {
		if t.Name != topic {
			continue
		}
		owningTopic = t
		for _, p := range t.Partitions {
			if p.ID == partition {
				matches = append(matches, p)
			}
		}
	}

	switch len(matches) {
	case 0:
		return Endpoint{}, ErrUnknownTopicOrPartition
	case 1:
	default:
		return Endpoint{}, ErrProtocolError
	}

	part := matches[0]
	if part.Err != ErrNoError {
		return Endpoint{}, part.Err
	}
	if owningTopic.Err != ErrNoError {
		return Endpoint{}, owningTopic.Err
	}

	leader := meta.brokerByID(part.Leader)
	if leader == nil {
		return Endpoint{}, ErrLeaderNotAvailable
	}
	return leader.endpoint(), nil
}

// DiscoverCoordinator issues a FindCoordinator request over conn for a
// group (kind == CoordinatorGroup) or transactional id (kind ==
// CoordinatorTransaction, version 1+ only) and resolves the coordinator's
// endpoint.
func DiscoverCoordinator(ctx context.Context, conn *Broker, kind CoordinatorType, id string) (Endpoint, error) {
	version := int16(0)
	if kind == CoordinatorTransaction {
		if vr, ok := conn.APIVersionRange(apiKeyFindCoordinator); ok && vr.maxVersion >= 1 {
			version = 1
		} else {
			return Endpoint{}, ErrTransactionCoordinatorV0
		}
	} else if vr, ok := conn.APIVersionRange(apiKeyFindCoordinator); ok && vr.maxVersion >= 1 {
		version = vr.maxVersion
	}

	req := &FindCoordinatorRequest{Version: version, Key: id, KeyType: kind}
	resp, err := conn.SendSync(ctx, &Request{
		Body:        req,
		NewResponse: func() ProtocolBody { return &FindCoordinatorResponse{Version: version} },
	})
	if err != nil {
		return Endpoint{}, err
	}

	fc, ok := resp.Body.(*FindCoordinatorResponse)
	if !ok {
		return Endpoint{}, ErrProtocolError
	}
	if fc.Err != ErrNoError {
		if fc.ErrMsg != nil {
			return Endpoint{}, Wrap(fc.Err, ConfigurationError(*fc.ErrMsg))
		}
		return Endpoint{}, fc.Err
	}
	if fc.Coordinator == nil {
		return Endpoint{}, ErrProtocolError
	}
	return fc.Coordinator.endpoint(), nil
}
