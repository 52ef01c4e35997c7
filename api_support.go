package kpro

// The API keys this client core speaks. Kept deliberately small: general
// produce/fetch/group-membership traffic is out of scope, only the
// handshake and discovery APIs are implemented.
const (
	apiKeyMetadata         int16 = 3
	apiKeyFindCoordinator  int16 = 10
	apiKeySaslHandshake    int16 = 17
	apiKeyAPIVersions      int16 = 18
	apiKeySaslAuthenticate int16 = APIKeySASLAuth
)

// clientVersionRanges is this client's own supported [min, max] window per
// API key, intersected against the broker's advertised range during
// negotiation (versions.go).
var clientVersionRanges = map[int16]apiVersionRange{
	apiKeyMetadata:         {minVersion: 0, maxVersion: 1},
	apiKeyFindCoordinator:  {minVersion: 0, maxVersion: 1},
	apiKeySaslHandshake:    {minVersion: 0, maxVersion: 1},
	apiKeyAPIVersions:      {minVersion: 0, maxVersion: 0},
	apiKeySaslAuthenticate: {minVersion: 0, maxVersion: 0},
}

// supportedVersionRange reports this client's own version window for an API
// key, before any negotiation against a broker's ApiVersionsResponse.
func supportedVersionRange(apiKey int16) (apiVersionRange, bool) {
	r, ok := clientVersionRanges[apiKey]
	return r, ok
}

// kafka09Range is the version to assume for a given API when talking to a
// broker old enough (pre-0.10) that it never answers ApiVersionsRequest at
// all; the connection has to pick something and fail loudly later if it
// guessed wrong, rather than never making progress.
func kafka09Range(apiKey int16) apiVersionRange {
	return apiVersionRange{minVersion: 0, maxVersion: 0}
}

// allAPIKeys lists every API key this client core knows how to speak, used
// by versions.go to build the negotiated apiVersionMap.
func allAPIKeys() []int16 {
	return []int16{
		apiKeyMetadata,
		apiKeyFindCoordinator,
		apiKeySaslHandshake,
		apiKeyAPIVersions,
		apiKeySaslAuthenticate,
	}
}
