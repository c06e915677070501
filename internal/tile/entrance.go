package tile

// EntranceKind - вид входа
type EntranceKind uint8

const (
	EntranceKindRideEntrance EntranceKind = iota
	EntranceKindRideExit
	EntranceKindParkEntrance
)

// EntranceElement - вход/выход аттракциона или вход в парк
type EntranceElement Element

const (
	entranceKind      = 5
	entranceSequence  = 6
	entranceStation   = 7
	entrancePath      = 8
	entranceRide      = 10
	entranceFlags2    = 12
	entranceSeqMask   = 0b00001111
	entranceLegacyBit = 1 << 0
)

func (n *EntranceElement) Base() *Element { return (*Element)(n) }

func (n *EntranceElement) e() *Element { return (*Element)(n) }

func (n *EntranceElement) GetEntranceKind() EntranceKind {
	return EntranceKind(n[entranceKind])
}

func (n *EntranceElement) SetEntranceKind(k EntranceKind) {
	n[entranceKind] = uint8(k)
}

func (n *EntranceElement) GetSequenceIndex() uint8 {
	return n[entranceSequence] & entranceSeqMask
}

func (n *EntranceElement) SetSequenceIndex(seq uint8) {
	n[entranceSequence] = (n[entranceSequence] &^ entranceSeqMask) | (seq & entranceSeqMask)
}

func (n *EntranceElement) GetStationIndex() StationIndex {
	return StationIndex(n[entranceStation])
}

func (n *EntranceElement) SetStationIndex(idx StationIndex) {
	n[entranceStation] = uint8(idx)
}

func (n *EntranceElement) GetPathEntryIndex() ObjectEntryIndex {
	return ObjectEntryIndex(n.e().u16(entrancePath))
}

func (n *EntranceElement) SetPathEntryIndex(idx ObjectEntryIndex) {
	n.e().putU16(entrancePath, uint16(idx))
}

func (n *EntranceElement) HasLegacyPathEntry() bool {
	return n.e().bit(entranceFlags2, entranceLegacyBit)
}

func (n *EntranceElement) SetHasLegacyPathEntry(on bool) {
	n.e().setBit(entranceFlags2, entranceLegacyBit, on)
}

func (n *EntranceElement) GetRideIndex() RideID {
	return RideID(n.e().u16(entranceRide))
}

func (n *EntranceElement) SetRideIndex(ride RideID) {
	n.e().putU16(entranceRide, uint16(ride))
}
