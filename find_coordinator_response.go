package kpro

import "time"

// CoordinatorType selects which kind of coordinator FindCoordinatorRequest
// is asking for. Version 0 of the API only understands group coordinators.
type CoordinatorType int8

const (
	CoordinatorGroup       CoordinatorType = 0
	CoordinatorTransaction CoordinatorType = 1
)

type FindCoordinatorResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Err          KError
	ErrMsg       *string
	Coordinator  *brokerRef
}

func (f *FindCoordinatorResponse) decode(pd packetDecoder, version int16) (err error) {
	f.Version = version

	if version >= 1 {
		throttleTime, err := pd.getInt32()
		if err != nil {
			return err
		}
		f.ThrottleTime = time.Duration(throttleTime) * time.Millisecond
	}

	tmp, err := pd.getInt16()
	if err != nil {
		return err
	}
	f.Err = KError(tmp)

	if version >= 1 {
		if f.ErrMsg, err = pd.getNullableString(); err != nil {
			return err
		}
	}

	coordinator := new(brokerRef)
	if err := coordinator.decode(pd); err != nil {
		return err
	}
	if coordinator.host == "" && coordinator.port == 0 {
		return nil
	}
	f.Coordinator = coordinator

	return nil
}

func (f *FindCoordinatorResponse) encode(pe packetEncoder) error {
	if f.Version >= 1 {
		pe.putInt32(int32(f.ThrottleTime / time.Millisecond))
	}

	pe.putInt16(int16(f.Err))

	if f.Version >= 1 {
		if err := pe.putNullableString(f.ErrMsg); err != nil {
			return err
		}
	}

	if f.Coordinator != nil {
		return f.Coordinator.encode(pe)
	}
	return (&brokerRef{}).encode(pe)
}

func (f *FindCoordinatorResponse) key() int16 {
	return apiKeyFindCoordinator
}

func (f *FindCoordinatorResponse) version() int16 {
	return f.Version
}
