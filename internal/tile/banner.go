package tile

// BannerElement - элемент баннера, ссылающийся на запись таблицы баннеров
type BannerElement Element

const (
	bannerIndex     = 5
	bannerPosition  = 7
	bannerEdges     = 8
	bannerEdgesMask = 0b00001111
)

func (b *BannerElement) Base() *Element { return (*Element)(b) }

func (b *BannerElement) GetIndex() BannerIndex {
	return BannerIndex((*Element)(b).u16(bannerIndex))
}

func (b *BannerElement) SetIndex(idx BannerIndex) {
	(*Element)(b).putU16(bannerIndex, uint16(idx))
}

func (b *BannerElement) GetPosition() uint8 {
	return b[bannerPosition]
}

func (b *BannerElement) SetPosition(pos uint8) {
	b[bannerPosition] = pos
}

// GetAllowedEdges возвращает маску сторон, через которые разрешен проход
func (b *BannerElement) GetAllowedEdges() uint8 {
	return b[bannerEdges] & bannerEdgesMask
}

func (b *BannerElement) SetAllowedEdges(edges uint8) {
	b[bannerEdges] = (b[bannerEdges] &^ bannerEdgesMask) | (edges & bannerEdgesMask)
}

func (b *BannerElement) ResetAllowedEdges() {
	b.SetAllowedEdges(bannerEdgesMask)
}
