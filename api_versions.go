package kpro

// apiVersionRange is the [min, max] version window one side of a connection
// is willing to speak for a given API key.
type apiVersionRange struct {
	minVersion int16
	maxVersion int16
}

// intersect returns the overlap of two ranges for the same API key, or
// false if the two sides share no usable version.
func (r apiVersionRange) intersect(other apiVersionRange) (apiVersionRange, bool) {
	lo := r.minVersion
	if other.minVersion > lo {
		lo = other.minVersion
	}
	hi := r.maxVersion
	if other.maxVersion < hi {
		hi = other.maxVersion
	}
	if lo > hi {
		return apiVersionRange{}, false
	}
	return apiVersionRange{minVersion: lo, maxVersion: hi}, true
}

// apiVersionMap is the negotiated per-API version window for one broker
// connection, built by versions.go from an ApiVersionsResponse.
type apiVersionMap map[int16]apiVersionRange
