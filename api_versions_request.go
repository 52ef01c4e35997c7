package kpro

// APIVersionsRequest has an empty body; the broker replies with the full
// set of API keys and version ranges it supports.
type APIVersionsRequest struct{}

func (r *APIVersionsRequest) encode(pe packetEncoder) error {
	return nil
}

func (r *APIVersionsRequest) decode(pd packetDecoder, version int16) (err error) {
	return nil
}

func (r *APIVersionsRequest) key() int16 {
	return apiKeyAPIVersions
}

func (r *APIVersionsRequest) version() int16 {
	return 0
}
