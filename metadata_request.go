package kpro

type MetadataRequest struct {
	Topics []string
}

func (mr *MetadataRequest) encode(pe packetEncoder) error {
	err := pe.putArrayLength(len(mr.Topics))
	if err != nil {
		return err
	}

	for i := range mr.Topics {
		err = pe.putString(mr.Topics[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (mr *MetadataRequest) decode(pd packetDecoder, version int16) error {
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	mr.Topics = make([]string, n)
	for i := range mr.Topics {
		if mr.Topics[i], err = pd.getString(); err != nil {
			return err
		}
	}
	return nil
}

func (mr *MetadataRequest) key() int16 {
	return apiKeyMetadata
}

func (mr *MetadataRequest) version() int16 {
	return 0
}
