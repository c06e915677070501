package tile

// SurfaceElement - представление элемента поверхности земли
type SurfaceElement Element

const (
	surfSlope       = 5
	surfWaterHeight = 6
	surfGrass       = 7
	surfOwnership   = 8
	surfStyle       = 9
	surfEdge        = 10
)

const (
	SurfaceSlopeMask     uint8 = 0b00011111
	SurfaceOwnershipMask uint8 = 0b11110000
	SurfaceParkFenceMask uint8 = 0b00001111

	grassLengthMask uint8 = 0b00000111
	grassTimerStep  uint8 = 0x10
)

// Флаги владения (верхний полубайт Ownership)
const (
	OwnershipConstructionRightsOwned uint8 = 1 << 4
	OwnershipOwned                   uint8 = 1 << 5
	OwnershipConstructionRightsSale  uint8 = 1 << 6
	OwnershipAvailable               uint8 = 1 << 7
)

// Длины травы
const (
	GrassLengthMowed uint8 = iota
	GrassLengthClear0
	GrassLengthClear1
	GrassLengthClear2
	GrassLengthClumps0
	GrassLengthClumps1
	GrassLengthClumps2
)

// Base возвращает общий вид записи
func (s *SurfaceElement) Base() *Element { return (*Element)(s) }

func (s *SurfaceElement) GetSlope() uint8 {
	return s[surfSlope] & SurfaceSlopeMask
}

func (s *SurfaceElement) SetSlope(slope uint8) {
	s[surfSlope] = slope & SurfaceSlopeMask
}

// GetWaterHeight возвращает уровень воды в мировых координатах (0 - воды нет)
func (s *SurfaceElement) GetWaterHeight() int {
	return int(s[surfWaterHeight]) * WaterHeightStep
}

// SetWaterHeight записывает уровень воды из мировых координат
func (s *SurfaceElement) SetWaterHeight(z int) {
	h := z / WaterHeightStep
	if h < 0 {
		h = 0
	}
	if h > MaxElementHeight {
		h = MaxElementHeight
	}
	s[surfWaterHeight] = uint8(h)
}

// GetGrassLength возвращает длину травы (0-6)
func (s *SurfaceElement) GetGrassLength() uint8 {
	return s[surfGrass] & grassLengthMask
}

// SetGrassLength записывает длину травы и сбрасывает таймер роста
func (s *SurfaceElement) SetGrassLength(length uint8) {
	s[surfGrass] = length & grassLengthMask
}

// CanGrassGrow сообщает, растет ли трава на объекте поверхности
func (s *SurfaceElement) CanGrassGrow(objs ObjectLookup) bool {
	if objs == nil {
		return false
	}
	obj := objs.SurfaceObject(s.GetSurfaceObjectIndex())
	return obj != nil && obj.CanGrassGrow
}

// UpdateGrassLength продвигает рост травы на один шаг.
// blocked - поверх поверхности на этом тайле стоит что-то, что мешает траве;
// в этом случае трава скашивается.
func (s *SurfaceElement) UpdateGrassLength(objs ObjectLookup, blocked bool) {
	if !s.CanGrassGrow(objs) {
		return
	}
	length := s.GetGrassLength()

	// Под водой трава не растет
	if s.GetWaterHeight() > s.Base().GetBaseZ() {
		if length != GrassLengthClear0 {
			s.SetGrassLength(GrassLengthClear0)
		}
		return
	}
	if blocked {
		if length != GrassLengthClear0 {
			s.SetGrassLength(GrassLengthClear0)
		}
		return
	}
	if length == GrassLengthClumps2 {
		return
	}

	timer := s[surfGrass] &^ grassLengthMask
	timer += grassTimerStep
	if timer == 0 {
		// таймер переполнился - трава подросла
		length++
	}
	s[surfGrass] = timer | (length & grassLengthMask)
}

func (s *SurfaceElement) GetOwnership() uint8 {
	return s[surfOwnership] & SurfaceOwnershipMask
}

func (s *SurfaceElement) SetOwnership(ownership uint8) {
	s[surfOwnership] &^= SurfaceOwnershipMask
	s[surfOwnership] |= ownership & SurfaceOwnershipMask
}

// GetParkFences возвращает маску ограды парка по 4 сторонам
func (s *SurfaceElement) GetParkFences() uint8 {
	return s[surfOwnership] & SurfaceParkFenceMask
}

func (s *SurfaceElement) SetParkFences(fences uint8) {
	s[surfOwnership] &^= SurfaceParkFenceMask
	s[surfOwnership] |= fences & SurfaceParkFenceMask
}

func (s *SurfaceElement) GetSurfaceObjectIndex() ObjectEntryIndex {
	return ObjectEntryIndex(s[surfStyle])
}

func (s *SurfaceElement) SetSurfaceObjectIndex(idx ObjectEntryIndex) {
	s[surfStyle] = uint8(idx)
}

func (s *SurfaceElement) GetEdgeObjectIndex() ObjectEntryIndex {
	return ObjectEntryIndex(s[surfEdge])
}

func (s *SurfaceElement) SetEdgeObjectIndex(idx ObjectEntryIndex) {
	s[surfEdge] = uint8(idx)
}

// GetSurfaceObject разрешает объект поверхности; nil, если не загружен
func (s *SurfaceElement) GetSurfaceObject(objs ObjectLookup) *TerrainSurfaceObject {
	if objs == nil {
		return nil
	}
	return objs.SurfaceObject(s.GetSurfaceObjectIndex())
}

func (s *SurfaceElement) GetEdgeObject(objs ObjectLookup) *TerrainEdgeObject {
	if objs == nil {
		return nil
	}
	return objs.EdgeObject(s.GetEdgeObjectIndex())
}

// HasTrackThatNeedsWater - на тайле стоит трек, требующий воды рядом (лодки и т.п.)
func (s *SurfaceElement) HasTrackThatNeedsWater() bool {
	return s[offType]&surfaceTrackNeedsWater != 0
}

func (s *SurfaceElement) SetHasTrackThatNeedsWater(on bool) {
	(*Element)(s).setBit(offType, surfaceTrackNeedsWater, on)
}
