package kpro

// FindCoordinatorRequest asks a broker which broker currently coordinates a
// consumer group (KeyType 0, the only kind version 0 of the API supports)
// or a transactional id (KeyType 1, version 1+ only).
type FindCoordinatorRequest struct {
	Version int16
	Key     string

	// KeyType is ignored at version 0: the broker always treats Key as a
	// group id. Sending KeyType 1 against a version-0-only broker is a
	// caller error this module does not try to paper over.
	KeyType CoordinatorType
}

func (f *FindCoordinatorRequest) encode(pe packetEncoder) error {
	if err := pe.putString(f.Key); err != nil {
		return err
	}

	if f.Version >= 1 {
		pe.putInt8(int8(f.KeyType))
	}

	return nil
}

func (f *FindCoordinatorRequest) decode(pd packetDecoder, version int16) (err error) {
	f.Version = version

	if f.Key, err = pd.getString(); err != nil {
		return err
	}

	if version >= 1 {
		keyType, err := pd.getInt8()
		if err != nil {
			return err
		}
		f.KeyType = CoordinatorType(keyType)
	}

	return nil
}

func (f *FindCoordinatorRequest) key() int16 {
	return apiKeyFindCoordinator
}

func (f *FindCoordinatorRequest) version() int16 {
	return f.Version
}
