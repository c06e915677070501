package tile

// TrackElement - представление участка трека аттракциона
type TrackElement Element

const (
	trackType         = 5
	trackSequence     = 7
	trackColour       = 8
	trackStation      = 9
	trackFlags2       = 10
	trackRideType     = 11
	trackRideIndex    = 13
	trackBrakeBoost   = 15
	trackSequenceMask = 0b00001111
	trackColourMask   = 0b00000011
)

// TrackSequenceGreenLight - зеленый сигнал станции
const TrackSequenceGreenLight uint8 = 1 << 7

// Биты Flags2
const (
	TrackFlagChainLift      uint8 = 1 << 0
	TrackFlagInverted       uint8 = 1 << 1
	TrackFlagCableLift      uint8 = 1 << 2
	TrackFlagHighlight      uint8 = 1 << 3
	TrackFlagBrakeClosed    uint8 = 1 << 4
	TrackFlagIndestructible uint8 = 1 << 5
)

func (t *TrackElement) Base() *Element { return (*Element)(t) }

func (t *TrackElement) e() *Element { return (*Element)(t) }

func (t *TrackElement) GetTrackType() uint16 {
	return t.e().u16(trackType)
}

func (t *TrackElement) SetTrackType(v uint16) {
	t.e().putU16(trackType, v)
}

func (t *TrackElement) GetSequenceIndex() uint8 {
	return t[trackSequence] & trackSequenceMask
}

func (t *TrackElement) SetSequenceIndex(seq uint8) {
	t[trackSequence] = (t[trackSequence] &^ trackSequenceMask) | (seq & trackSequenceMask)
}

func (t *TrackElement) HasGreenLight() bool {
	return t.e().bit(trackSequence, TrackSequenceGreenLight)
}

func (t *TrackElement) SetHasGreenLight(on bool) {
	t.e().setBit(trackSequence, TrackSequenceGreenLight, on)
}

func (t *TrackElement) GetColourScheme() uint8 {
	return t[trackColour] & trackColourMask
}

func (t *TrackElement) SetColourScheme(scheme uint8) {
	t[trackColour] = (t[trackColour] &^ trackColourMask) | (scheme & trackColourMask)
}

func (t *TrackElement) GetStationIndex() StationIndex {
	return StationIndex(t[trackStation])
}

func (t *TrackElement) SetStationIndex(idx StationIndex) {
	t[trackStation] = uint8(idx)
}

func (t *TrackElement) HasChain() bool {
	return t.e().bit(trackFlags2, TrackFlagChainLift)
}

func (t *TrackElement) SetHasChain(on bool) {
	t.e().setBit(trackFlags2, TrackFlagChainLift, on)
}

func (t *TrackElement) IsInverted() bool {
	return t.e().bit(trackFlags2, TrackFlagInverted)
}

func (t *TrackElement) SetInverted(on bool) {
	t.e().setBit(trackFlags2, TrackFlagInverted, on)
}

func (t *TrackElement) HasCableLift() bool {
	return t.e().bit(trackFlags2, TrackFlagCableLift)
}

func (t *TrackElement) SetHasCableLift(on bool) {
	t.e().setBit(trackFlags2, TrackFlagCableLift, on)
}

func (t *TrackElement) IsHighlighted() bool {
	return t.e().bit(trackFlags2, TrackFlagHighlight)
}

func (t *TrackElement) SetHighlight(on bool) {
	t.e().setBit(trackFlags2, TrackFlagHighlight, on)
}

func (t *TrackElement) IsBrakeClosed() bool {
	return t.e().bit(trackFlags2, TrackFlagBrakeClosed)
}

func (t *TrackElement) SetBrakeClosed(on bool) {
	t.e().setBit(trackFlags2, TrackFlagBrakeClosed, on)
}

func (t *TrackElement) IsIndestructible() bool {
	return t.e().bit(trackFlags2, TrackFlagIndestructible)
}

func (t *TrackElement) SetIsIndestructible(on bool) {
	t.e().setBit(trackFlags2, TrackFlagIndestructible, on)
}

func (t *TrackElement) GetRideType() uint16 {
	return t.e().u16(trackRideType)
}

func (t *TrackElement) SetRideType(v uint16) {
	t.e().putU16(trackRideType, v)
}

func (t *TrackElement) GetRideIndex() RideID {
	return RideID(t.e().u16(trackRideIndex))
}

func (t *TrackElement) SetRideIndex(ride RideID) {
	t.e().putU16(trackRideIndex, uint16(ride))
}

func (t *TrackElement) GetBrakeBoosterSpeed() uint8 {
	return t[trackBrakeBoost]
}

func (t *TrackElement) SetBrakeBoosterSpeed(speed uint8) {
	t[trackBrakeBoost] = speed
}
