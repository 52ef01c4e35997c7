package kpro

type SaslHandshakeResponse struct {
	Err               KError
	EnabledMechanisms []string
}

func (r *SaslHandshakeResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	return pe.putStringArray(r.EnabledMechanisms)
}

func (r *SaslHandshakeResponse) decode(pd packetDecoder, version int16) (err error) {
	kerr, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(kerr)

	r.EnabledMechanisms, err = pd.getStringArray()
	return err
}

func (r *SaslHandshakeResponse) key() int16 {
	return apiKeySaslHandshake
}

func (r *SaslHandshakeResponse) version() int16 {
	return 0
}
