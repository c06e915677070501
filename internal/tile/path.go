package tile

import "errors"

// PathElement - представление пешеходной дорожки или очереди
type PathElement Element

const (
	pathSurface   = 5
	pathRailings  = 7
	pathAddition  = 9
	pathEdges     = 10
	pathFlags2    = 11
	pathSlopeDir  = 12
	pathCell      = 13 // union: статус дополнения либо индекс аттракциона
	pathStation   = 15
	pathEdgesMask = 0b00001111
)

// Биты байта Type, используемые дорожкой
const (
	pathTypeQueue           uint8 = 1 << 0
	pathTypeWide            uint8 = 1 << 1
	pathQueueBannerDirMask  uint8 = 0b11000000
	pathQueueBannerDirShift       = 6
)

// Биты Flags2
const (
	PathFlagSloped              uint8 = 1 << 0
	PathFlagHasQueueBanner      uint8 = 1 << 1
	PathFlagAdditionIsGhost     uint8 = 1 << 2
	PathFlagBlockedByVehicle    uint8 = 1 << 3
	PathFlagAdditionIsBroken    uint8 = 1 << 4
	PathFlagLegacyPathEntry     uint8 = 1 << 5
	PathFlagHasJunctionRailings uint8 = 1 << 6
	PathFlagDrawOverSupports    uint8 = 1 << 7
)

// ErrPathCellMismatch - обращение к ячейке дорожки не того вида (очередь/не очередь)
var ErrPathCellMismatch = errors.New("ячейка дорожки не соответствует виду дорожки")

// PathCell - закрытый вариант для байтов 13-14 дорожки.
// У очереди там хранится аттракцион, у обычной дорожки - статус дополнения.
type PathCell interface {
	isPathCell()
}

// QueueCell - ячейка очереди
type QueueCell struct {
	Ride RideID
}

// AdditionCell - ячейка обычной дорожки (используется урнами)
type AdditionCell struct {
	Status uint8
}

func (QueueCell) isPathCell()    {}
func (AdditionCell) isPathCell() {}

func (p *PathElement) Base() *Element { return (*Element)(p) }

func (p *PathElement) e() *Element { return (*Element)(p) }

func (p *PathElement) GetSurfaceEntryIndex() ObjectEntryIndex {
	return ObjectEntryIndex(p.e().u16(pathSurface))
}

func (p *PathElement) SetSurfaceEntryIndex(idx ObjectEntryIndex) {
	p.e().putU16(pathSurface, uint16(idx))
	p.e().setBit(pathFlags2, PathFlagLegacyPathEntry, false)
}

// GetLegacyPathEntryIndex - для старых сохранений поверхность и ограждения задаются одним объектом
func (p *PathElement) GetLegacyPathEntryIndex() ObjectEntryIndex {
	if !p.HasLegacyPathEntry() {
		return ObjectEntryIndexNull
	}
	return ObjectEntryIndex(p.e().u16(pathSurface))
}

func (p *PathElement) SetLegacyPathEntryIndex(idx ObjectEntryIndex) {
	p.e().putU16(pathSurface, uint16(idx))
	p.e().putU16(pathRailings, uint16(ObjectEntryIndexNull))
	p.e().setBit(pathFlags2, PathFlagLegacyPathEntry, true)
}

func (p *PathElement) HasLegacyPathEntry() bool {
	return p.e().bit(pathFlags2, PathFlagLegacyPathEntry)
}

func (p *PathElement) GetRailingsEntryIndex() ObjectEntryIndex {
	return ObjectEntryIndex(p.e().u16(pathRailings))
}

func (p *PathElement) SetRailingsEntryIndex(idx ObjectEntryIndex) {
	p.e().putU16(pathRailings, uint16(idx))
}

// HasAddition - установлено ли дополнение (0 означает его отсутствие)
func (p *PathElement) HasAddition() bool {
	return p[pathAddition] != 0
}

// GetAddition возвращает сырое значение (индекс объекта + 1)
func (p *PathElement) GetAddition() uint8 {
	return p[pathAddition]
}

func (p *PathElement) SetAddition(addition uint8) {
	p[pathAddition] = addition
}

// GetAdditionEntryIndex возвращает индекс объекта дополнения или ObjectEntryIndexNull
func (p *PathElement) GetAdditionEntryIndex() ObjectEntryIndex {
	if !p.HasAddition() {
		return ObjectEntryIndexNull
	}
	return ObjectEntryIndex(p[pathAddition] - 1)
}

func (p *PathElement) SetAdditionEntryIndex(idx ObjectEntryIndex) {
	if idx == ObjectEntryIndexNull || idx >= 0xFF {
		p[pathAddition] = 0
		return
	}
	p[pathAddition] = uint8(idx) + 1
}

func (p *PathElement) GetAdditionEntry(objs ObjectLookup) *PathAdditionEntry {
	if objs == nil || !p.HasAddition() {
		return nil
	}
	return objs.PathAdditionEntry(p.GetAdditionEntryIndex())
}

func (p *PathElement) AdditionIsGhost() bool {
	return p.e().bit(pathFlags2, PathFlagAdditionIsGhost)
}

func (p *PathElement) SetAdditionIsGhost(on bool) {
	p.e().setBit(pathFlags2, PathFlagAdditionIsGhost, on)
}

func (p *PathElement) GetEdges() uint8 {
	return p[pathEdges] & pathEdgesMask
}

func (p *PathElement) SetEdges(edges uint8) {
	p[pathEdges] = (p[pathEdges] &^ pathEdgesMask) | (edges & pathEdgesMask)
}

func (p *PathElement) GetCorners() uint8 {
	return p[pathEdges] >> 4
}

func (p *PathElement) SetCorners(corners uint8) {
	p[pathEdges] = (p[pathEdges] & pathEdgesMask) | (corners << 4)
}

func (p *PathElement) GetEdgesAndCorners() uint8 {
	return p[pathEdges]
}

func (p *PathElement) SetEdgesAndCorners(v uint8) {
	p[pathEdges] = v
}

func (p *PathElement) IsSloped() bool {
	return p.e().bit(pathFlags2, PathFlagSloped)
}

func (p *PathElement) SetSloped(on bool) {
	p.e().setBit(pathFlags2, PathFlagSloped, on)
}

func (p *PathElement) GetSlopeDirection() Direction {
	return Direction(p[pathSlopeDir] & DirectionMask)
}

func (p *PathElement) SetSlopeDirection(d Direction) {
	p[pathSlopeDir] = (p[pathSlopeDir] &^ DirectionMask) | (uint8(d) & DirectionMask)
}

func (p *PathElement) HasJunctionRailings() bool {
	return p.e().bit(pathFlags2, PathFlagHasJunctionRailings)
}

func (p *PathElement) SetJunctionRailings(on bool) {
	p.e().setBit(pathFlags2, PathFlagHasJunctionRailings, on)
}

func (p *PathElement) IsBroken() bool {
	return p.e().bit(pathFlags2, PathFlagAdditionIsBroken)
}

func (p *PathElement) SetIsBroken(on bool) {
	p.e().setBit(pathFlags2, PathFlagAdditionIsBroken, on)
}

func (p *PathElement) IsBlockedByVehicle() bool {
	return p.e().bit(pathFlags2, PathFlagBlockedByVehicle)
}

func (p *PathElement) SetIsBlockedByVehicle(on bool) {
	p.e().setBit(pathFlags2, PathFlagBlockedByVehicle, on)
}

func (p *PathElement) ShouldDrawPathOverSupports() bool {
	return p.e().bit(pathFlags2, PathFlagDrawOverSupports)
}

func (p *PathElement) SetShouldDrawPathOverSupports(on bool) {
	p.e().setBit(pathFlags2, PathFlagDrawOverSupports, on)
}

func (p *PathElement) IsWide() bool {
	return p.e().bit(offType, pathTypeWide)
}

func (p *PathElement) SetWide(on bool) {
	p.e().setBit(offType, pathTypeWide, on)
}

func (p *PathElement) IsQueue() bool {
	return p.e().bit(offType, pathTypeQueue)
}

// SetIsQueue переключает вид дорожки. При смене вида ячейка 13-14 сбрасывается
// в значение по умолчанию нового вида, чтобы старые байты не читались как новое поле.
func (p *PathElement) SetIsQueue(on bool) {
	if p.IsQueue() == on {
		return
	}
	p.e().setBit(offType, pathTypeQueue, on)
	if on {
		p.e().putU16(pathCell, uint16(RideIDNull))
	} else {
		p.e().putU16(pathCell, 0)
	}
}

func (p *PathElement) HasQueueBanner() bool {
	return p.e().bit(pathFlags2, PathFlagHasQueueBanner)
}

func (p *PathElement) SetHasQueueBanner(on bool) {
	p.e().setBit(pathFlags2, PathFlagHasQueueBanner, on)
}

func (p *PathElement) GetQueueBannerDirection() Direction {
	return Direction((p[offType] & pathQueueBannerDirMask) >> pathQueueBannerDirShift)
}

func (p *PathElement) SetQueueBannerDirection(d Direction) {
	p[offType] &^= pathQueueBannerDirMask
	p[offType] |= (uint8(d) << pathQueueBannerDirShift) & pathQueueBannerDirMask
}

// Cell возвращает содержимое ячейки 13-14 в виде, соответствующем IsQueue
func (p *PathElement) Cell() PathCell {
	if p.IsQueue() {
		return QueueCell{Ride: RideID(p.e().u16(pathCell))}
	}
	return AdditionCell{Status: p[pathCell]}
}

// SetCell записывает ячейку и одновременно переключает вид дорожки
func (p *PathElement) SetCell(cell PathCell) {
	switch c := cell.(type) {
	case QueueCell:
		p.e().setBit(offType, pathTypeQueue, true)
		p.e().putU16(pathCell, uint16(c.Ride))
	case AdditionCell:
		p.e().setBit(offType, pathTypeQueue, false)
		p[pathCell] = c.Status
		p[pathCell+1] = 0
	}
}

// GetRideIndex возвращает аттракцион очереди; у обычной дорожки - RideIDNull
func (p *PathElement) GetRideIndex() RideID {
	if q, ok := p.Cell().(QueueCell); ok {
		return q.Ride
	}
	return RideIDNull
}

// SetRideIndex записывает аттракцион; допустимо только для очереди
func (p *PathElement) SetRideIndex(ride RideID) error {
	if !p.IsQueue() {
		return ErrPathCellMismatch
	}
	p.e().putU16(pathCell, uint16(ride))
	return nil
}

// GetAdditionStatus возвращает статус дополнения; у очереди - 0
func (p *PathElement) GetAdditionStatus() uint8 {
	if a, ok := p.Cell().(AdditionCell); ok {
		return a.Status
	}
	return 0
}

// SetAdditionStatus записывает статус дополнения; недопустимо для очереди
func (p *PathElement) SetAdditionStatus(status uint8) error {
	if p.IsQueue() {
		return ErrPathCellMismatch
	}
	p[pathCell] = status
	return nil
}

func (p *PathElement) GetStationIndex() StationIndex {
	return StationIndex(p[pathStation])
}

func (p *PathElement) SetStationIndex(idx StationIndex) {
	p[pathStation] = uint8(idx)
}

// IsLevelCrossing сообщает, пересекает ли дорожка трек на той же высоте.
// run - цепочка тайла, которому принадлежит дорожка.
func (p *PathElement) IsLevelCrossing(run []Element) bool {
	if p.IsQueue() || p.IsSloped() {
		return false
	}
	for i := range run {
		if run[i].GetType() != TypeTrack {
			continue
		}
		if run[i].BaseHeight() == p.e().BaseHeight() {
			return true
		}
	}
	return false
}
