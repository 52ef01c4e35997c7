package kpro

import "sort"

// PartitionMetadata describes one partition's leader and replica set as
// reported by a MetadataResponse.
type PartitionMetadata struct {
	Err      KError
	ID       int32
	Leader   int32
	Replicas []int32
	Isr      []int32
}

func (p *PartitionMetadata) decode(pd packetDecoder) (err error) {
	tmp, err := pd.getInt16()
	if err != nil {
		return err
	}
	p.Err = KError(tmp)

	if p.ID, err = pd.getInt32(); err != nil {
		return err
	}
	if p.Leader, err = pd.getInt32(); err != nil {
		return err
	}
	if p.Replicas, err = pd.getInt32Array(); err != nil {
		return err
	}
	if p.Isr, err = pd.getInt32Array(); err != nil {
		return err
	}
	return nil
}

// SortedReplicas returns Replicas in ascending broker-id order. The wire
// format makes no ordering guarantee; callers that diff replica sets across
// polls want a stable order.
func (p *PartitionMetadata) SortedReplicas() []int32 {
	sorted := append([]int32(nil), p.Replicas...)
	sort.Sort(int32Slice(sorted))
	return sorted
}

// SortedIsr returns Isr in ascending broker-id order, see SortedReplicas.
func (p *PartitionMetadata) SortedIsr() []int32 {
	sorted := append([]int32(nil), p.Isr...)
	sort.Sort(int32Slice(sorted))
	return sorted
}

// TopicMetadata describes one topic's partitions as reported by a
// MetadataResponse.
type TopicMetadata struct {
	Err        KError
	Name       string
	Partitions []*PartitionMetadata
}

func (t *TopicMetadata) decode(pd packetDecoder) (err error) {
	tmp, err := pd.getInt16()
	if err != nil {
		return err
	}
	t.Err = KError(tmp)

	if t.Name, err = pd.getString(); err != nil {
		return err
	}

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	t.Partitions = make([]*PartitionMetadata, n)
	for i := 0; i < n; i++ {
		p := new(PartitionMetadata)
		if err := p.decode(pd); err != nil {
			return err
		}
		t.Partitions[i] = p
	}
	return nil
}

// MetadataResponse is the cluster membership and topic/partition leadership
// snapshot discovery.go walks to resolve a partition leader.
type MetadataResponse struct {
	Brokers []*brokerRef
	Topics  []*TopicMetadata
}

func (r *MetadataResponse) decode(pd packetDecoder, version int16) (err error) {
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Brokers = make([]*brokerRef, n)
	for i := 0; i < n; i++ {
		b := new(brokerRef)
		if err := b.decode(pd); err != nil {
			return err
		}
		r.Brokers[i] = b
	}

	n, err = pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]*TopicMetadata, n)
	for i := 0; i < n; i++ {
		t := new(TopicMetadata)
		if err := t.decode(pd); err != nil {
			return err
		}
		r.Topics[i] = t
	}
	return nil
}

func (r *MetadataResponse) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Brokers)); err != nil {
		return err
	}
	for _, b := range r.Brokers {
		if err := b.encode(pe); err != nil {
			return err
		}
	}

	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		pe.putInt16(int16(t.Err))
		if err := pe.putString(t.Name); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(t.Partitions)); err != nil {
			return err
		}
		for _, p := range t.Partitions {
			pe.putInt16(int16(p.Err))
			pe.putInt32(p.ID)
			pe.putInt32(p.Leader)
			if err := pe.putInt32Array(p.Replicas); err != nil {
				return err
			}
			if err := pe.putInt32Array(p.Isr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *MetadataResponse) key() int16 {
	return apiKeyMetadata
}

func (r *MetadataResponse) version() int16 {
	return 0
}

// brokerByID returns the broker descriptor matching id, or nil if the
// response never mentioned it.
func (r *MetadataResponse) brokerByID(id int32) *brokerRef {
	for _, b := range r.Brokers {
		if b.id == id {
			return b
		}
	}
	return nil
}
