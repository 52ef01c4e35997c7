package kpro

import (
	"context"
)

// negotiate issues an ApiVersionsRequest over conn and intersects the
// broker's advertised ranges with this client's own per-API ranges. If the
// broker never answers (a pre-0.10 broker closes the connection instead of
// replying with an error), it falls back to kafka09Range for every API
// this client speaks.
func negotiate(conn *Broker) (apiVersionMap, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conn.conf.Net.RequestTimeout)
	defer cancel()

	resp, err := conn.SendSync(ctx, &Request{
		Body:        &APIVersionsRequest{},
		NewResponse: func() ProtocolBody { return new(APIVersionsResponse) },
	})
	if err != nil {
		return fallbackVersionMap(), nil
	}

	body, ok := resp.Body.(*APIVersionsResponse)
	if !ok {
		return nil, ErrProtocolError
	}
	if body.Err != ErrNoError {
		return nil, body.Err
	}

	serverRanges := make(map[int16]apiVersionRange, len(body.APIVersions))
	for _, v := range body.APIVersions {
		serverRanges[v.APIKey] = apiVersionRange{minVersion: v.MinVersion, maxVersion: v.MaxVersion}
	}

	out := make(apiVersionMap, len(clientVersionRanges))
	for _, key := range allAPIKeys() {
		clientRange, _ := supportedVersionRange(key)
		serverRange, ok := serverRanges[key]
		if !ok {
			continue
		}
		if merged, ok := clientRange.intersect(serverRange); ok {
			out[key] = merged
		}
	}
	return out, nil
}

func fallbackVersionMap() apiVersionMap {
	out := make(apiVersionMap, len(clientVersionRanges))
	for _, key := range allAPIKeys() {
		out[key] = kafka09Range(key)
	}
	return out
}
