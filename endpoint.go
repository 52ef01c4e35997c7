package kpro

import (
	"math/rand"
	"net"
	"strconv"
)

// Endpoint is a bootstrap or discovered broker address.
type Endpoint struct {
	Host string
	Port uint16
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// shuffleEndpoints returns a copy of endpoints in random order, so repeated
// bootstrap attempts against the same list don't all hammer the same first
// entry when it happens to be down.
func shuffleEndpoints(endpoints []Endpoint) []Endpoint {
	out := make([]Endpoint, len(endpoints))
	copy(out, endpoints)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
