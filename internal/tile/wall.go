package tile

// WallElement - стена на краю тайла
type WallElement Element

const (
	wallEntry      = 5
	wallColour     = 7
	wallAnimation  = 10
	wallBanner     = 11
	wallSlopeMask  = 0b11000000
	wallSlopeShift = 6
	wallFrameMask  = 0b01111000
	wallFrameShift = 3
)

// Биты байта анимации
const (
	WallAnimationBackwards   uint8 = 1 << 1
	WallAnimationAcrossTrack uint8 = 1 << 2
)

func (w *WallElement) Base() *Element { return (*Element)(w) }

func (w *WallElement) e() *Element { return (*Element)(w) }

func (w *WallElement) GetEntryIndex() ObjectEntryIndex {
	return ObjectEntryIndex(w.e().u16(wallEntry))
}

func (w *WallElement) SetEntryIndex(idx ObjectEntryIndex) {
	w.e().putU16(wallEntry, uint16(idx))
}

func (w *WallElement) GetEntry(objs ObjectLookup) *WallSceneryEntry {
	if objs == nil {
		return nil
	}
	return objs.WallEntry(w.GetEntryIndex())
}

// GetSlope возвращает наклон стены (биты 6-7 байта Type)
func (w *WallElement) GetSlope() uint8 {
	return (w[offType] & wallSlopeMask) >> wallSlopeShift
}

func (w *WallElement) SetSlope(slope uint8) {
	w[offType] &^= wallSlopeMask
	w[offType] |= (slope << wallSlopeShift) & wallSlopeMask
}

func (w *WallElement) GetPrimaryColour() Colour   { return Colour(w[wallColour]) }
func (w *WallElement) GetSecondaryColour() Colour { return Colour(w[wallColour+1]) }
func (w *WallElement) GetTertiaryColour() Colour  { return Colour(w[wallColour+2]) }

func (w *WallElement) SetPrimaryColour(c Colour)   { w[wallColour] = uint8(c) }
func (w *WallElement) SetSecondaryColour(c Colour) { w[wallColour+1] = uint8(c) }
func (w *WallElement) SetTertiaryColour(c Colour)  { w[wallColour+2] = uint8(c) }

func (w *WallElement) GetAnimationFrame() uint8 {
	return (w[wallAnimation] & wallFrameMask) >> wallFrameShift
}

func (w *WallElement) SetAnimationFrame(frame uint8) {
	w[wallAnimation] &^= wallFrameMask
	w[wallAnimation] |= (frame << wallFrameShift) & wallFrameMask
}

func (w *WallElement) AnimationIsBackwards() bool {
	return w.e().bit(wallAnimation, WallAnimationBackwards)
}

func (w *WallElement) SetAnimationIsBackwards(on bool) {
	w.e().setBit(wallAnimation, WallAnimationBackwards, on)
}

func (w *WallElement) IsAcrossTrack() bool {
	return w.e().bit(wallAnimation, WallAnimationAcrossTrack)
}

func (w *WallElement) SetAcrossTrack(on bool) {
	w.e().setBit(wallAnimation, WallAnimationAcrossTrack, on)
}

// GetBannerIndex возвращает сохраненный индекс без проверки объекта стены
func (w *WallElement) GetBannerIndex() BannerIndex {
	return BannerIndex(w.e().u16(wallBanner))
}

func (w *WallElement) SetBannerIndex(idx BannerIndex) {
	w.e().putU16(wallBanner, uint16(idx))
}
