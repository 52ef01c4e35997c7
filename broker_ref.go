package kpro

import (
	"net"
	"strconv"
)

// brokerRef is the wire-level (id, host, port) triple Kafka embeds in
// metadata and find-coordinator responses. It names a broker without
// implying anything about whether this client core currently holds a
// connection to it; discovery.go turns one into an Endpoint for Dial.
type brokerRef struct {
	id   int32
	host string
	port int32
}

func (b *brokerRef) decode(pd packetDecoder) (err error) {
	b.id, err = pd.getInt32()
	if err != nil {
		return err
	}

	b.host, err = pd.getString()
	if err != nil {
		return err
	}

	b.port, err = pd.getInt32()
	if err != nil {
		return err
	}

	return nil
}

func (b *brokerRef) encode(pe packetEncoder) error {
	pe.putInt32(b.id)
	if err := pe.putString(b.host); err != nil {
		return err
	}
	pe.putInt32(b.port)
	return nil
}

func (b *brokerRef) ID() int32 {
	return b.id
}

func (b *brokerRef) Addr() string {
	return net.JoinHostPort(b.host, strconv.Itoa(int(b.port)))
}

func (b *brokerRef) endpoint() Endpoint {
	return Endpoint{Host: b.host, Port: uint16(b.port)}
}
