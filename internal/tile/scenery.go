package tile

// SmallSceneryElement - малая декорация (дерево, куст, скамья вне дорожки)
type SmallSceneryElement Element

const (
	smallEntry    = 5
	smallAge      = 7
	smallColour   = 8
	smallFlags2   = 11
	maxSceneryAge = 255
)

// SmallSceneryFlagNeedsSupports - декорация стоит на опорах
const SmallSceneryFlagNeedsSupports uint8 = 1 << 0

func (s *SmallSceneryElement) Base() *Element { return (*Element)(s) }

func (s *SmallSceneryElement) e() *Element { return (*Element)(s) }

func (s *SmallSceneryElement) GetEntryIndex() ObjectEntryIndex {
	return ObjectEntryIndex(s.e().u16(smallEntry))
}

func (s *SmallSceneryElement) SetEntryIndex(idx ObjectEntryIndex) {
	s.e().putU16(smallEntry, uint16(idx))
}

func (s *SmallSceneryElement) GetEntry(objs ObjectLookup) *SmallSceneryEntry {
	if objs == nil {
		return nil
	}
	return objs.SmallSceneryEntry(s.GetEntryIndex())
}

func (s *SmallSceneryElement) GetAge() uint8 {
	return s[smallAge]
}

func (s *SmallSceneryElement) SetAge(age uint8) {
	s[smallAge] = age
}

// IncreaseAge увеличивает возраст на единицу, не переходя через максимум
func (s *SmallSceneryElement) IncreaseAge() {
	if s[smallAge] < maxSceneryAge {
		s[smallAge]++
	}
}

// GetSceneryQuadrant возвращает четверть тайла, которую занимает декорация
func (s *SmallSceneryElement) GetSceneryQuadrant() uint8 {
	return (s[offType] & QuadrantMask) >> 6
}

func (s *SmallSceneryElement) SetSceneryQuadrant(q uint8) {
	s[offType] &^= QuadrantMask
	s[offType] |= (q << 6) & QuadrantMask
}

func (s *SmallSceneryElement) GetPrimaryColour() Colour   { return Colour(s[smallColour]) }
func (s *SmallSceneryElement) GetSecondaryColour() Colour { return Colour(s[smallColour+1]) }
func (s *SmallSceneryElement) GetTertiaryColour() Colour  { return Colour(s[smallColour+2]) }

func (s *SmallSceneryElement) SetPrimaryColour(c Colour)   { s[smallColour] = uint8(c) }
func (s *SmallSceneryElement) SetSecondaryColour(c Colour) { s[smallColour+1] = uint8(c) }
func (s *SmallSceneryElement) SetTertiaryColour(c Colour)  { s[smallColour+2] = uint8(c) }

func (s *SmallSceneryElement) NeedsSupports() bool {
	return s.e().bit(smallFlags2, SmallSceneryFlagNeedsSupports)
}

func (s *SmallSceneryElement) SetNeedsSupports() {
	s.e().setBit(smallFlags2, SmallSceneryFlagNeedsSupports, true)
}

// LargeSceneryElement - один тайл большой декорации
type LargeSceneryElement Element

const (
	largeEntry    = 5
	largeBanner   = 7
	largeSequence = 9
	largeColour   = 10
	largeFlags2   = 13
)

// LargeSceneryFlagAccounted - стоимость декорации уже учтена
const LargeSceneryFlagAccounted uint8 = 1 << 0

func (l *LargeSceneryElement) Base() *Element { return (*Element)(l) }

func (l *LargeSceneryElement) e() *Element { return (*Element)(l) }

func (l *LargeSceneryElement) GetEntryIndex() ObjectEntryIndex {
	return ObjectEntryIndex(l.e().u16(largeEntry))
}

func (l *LargeSceneryElement) SetEntryIndex(idx ObjectEntryIndex) {
	l.e().putU16(largeEntry, uint16(idx))
}

func (l *LargeSceneryElement) GetEntry(objs ObjectLookup) *LargeSceneryEntry {
	if objs == nil {
		return nil
	}
	return objs.LargeSceneryEntry(l.GetEntryIndex())
}

func (l *LargeSceneryElement) GetSequenceIndex() uint8 {
	return l[largeSequence]
}

func (l *LargeSceneryElement) SetSequenceIndex(seq uint8) {
	l[largeSequence] = seq
}

func (l *LargeSceneryElement) GetPrimaryColour() Colour   { return Colour(l[largeColour]) }
func (l *LargeSceneryElement) GetSecondaryColour() Colour { return Colour(l[largeColour+1]) }
func (l *LargeSceneryElement) GetTertiaryColour() Colour  { return Colour(l[largeColour+2]) }

func (l *LargeSceneryElement) SetPrimaryColour(c Colour)   { l[largeColour] = uint8(c) }
func (l *LargeSceneryElement) SetSecondaryColour(c Colour) { l[largeColour+1] = uint8(c) }
func (l *LargeSceneryElement) SetTertiaryColour(c Colour)  { l[largeColour+2] = uint8(c) }

// GetBannerIndex возвращает сохраненный индекс без проверки объекта.
// Для проверки поддержки текста используйте Element.GetBannerIndex.
func (l *LargeSceneryElement) GetBannerIndex() BannerIndex {
	return BannerIndex(l.e().u16(largeBanner))
}

func (l *LargeSceneryElement) SetBannerIndex(idx BannerIndex) {
	l.e().putU16(largeBanner, uint16(idx))
}

func (l *LargeSceneryElement) IsAccounted() bool {
	return l.e().bit(largeFlags2, LargeSceneryFlagAccounted)
}

func (l *LargeSceneryElement) SetIsAccounted(on bool) {
	l.e().setBit(largeFlags2, LargeSceneryFlagAccounted, on)
}
