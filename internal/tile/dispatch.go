package tile

import (
	"errors"

	"github.com/annel0/park-engine/internal/logging"
)

// ErrNoBannerSlot - у вида элемента нет места под индекс баннера
var ErrNoBannerSlot = errors.New("элемент не может хранить индекс баннера")

// GetRideIndex возвращает аттракцион для трека, входа и дорожки.
// Остальные виды всегда возвращают RideIDNull.
func (e *Element) GetRideIndex() RideID {
	switch e.GetType() {
	case TypeTrack:
		return e.AsTrack().GetRideIndex()
	case TypeEntrance:
		return e.AsEntrance().GetRideIndex()
	case TypePath:
		return e.AsPath().GetRideIndex()
	default:
		return RideIDNull
	}
}

// GetBannerIndex разрешает индекс баннера с учетом объекта.
// Большая декорация и стена сообщают индекс, только если их объект загружен
// и поддерживает бегущую строку; элемент баннера - всегда свой индекс.
func (e *Element) GetBannerIndex(objs ObjectLookup) BannerIndex {
	switch e.GetType() {
	case TypeLargeScenery:
		large := e.AsLargeScenery()
		entry := large.GetEntry(objs)
		if entry == nil || entry.ScrollingMode == ScrollingModeNone {
			return BannerIndexNull
		}
		return large.GetBannerIndex()
	case TypeWall:
		wall := e.AsWall()
		entry := wall.GetEntry(objs)
		if entry == nil || entry.ScrollingMode == ScrollingModeNone {
			return BannerIndexNull
		}
		return wall.GetBannerIndex()
	case TypeBanner:
		return e.AsBanner().GetIndex()
	default:
		return BannerIndexNull
	}
}

// SetBannerIndex записывает индекс баннера в стену, большую декорацию или баннер.
// Для остальных видов это ошибка программиста: она логируется и возвращается.
func (e *Element) SetBannerIndex(idx BannerIndex) error {
	switch e.GetType() {
	case TypeWall:
		e.AsWall().SetBannerIndex(idx)
	case TypeLargeScenery:
		e.AsLargeScenery().SetBannerIndex(idx)
	case TypeBanner:
		e.AsBanner().SetIndex(idx)
	default:
		logging.GetTileLogger().Error("Попытка записать индекс баннера в элемент вида %s", e.GetType())
		return ErrNoBannerSlot
	}
	return nil
}

// RemoveBannerEntry удаляет запись баннера, связанную с элементом, и закрывает его окно.
// Пустой индекс или отсутствующая запись - не ошибка.
func (e *Element) RemoveBannerEntry(objs ObjectLookup, banners BannerStore, windows WindowCloser) {
	if banners == nil {
		return
	}
	idx := e.GetBannerIndex(objs)
	if idx.IsNull() {
		return
	}
	banner := banners.GetBanner(idx)
	if banner == nil {
		return
	}
	if windows != nil {
		windows.CloseByNumber(WindowClassBanner, uint16(idx))
	}
	banners.DeleteBanner(banner.ID)
}

// ClearAs сбрасывает запись в пустой элемент вида t.
// Все байты нагрузки обнуляются, чтобы биты прежнего вида не читались новым.
func (e *Element) ClearAs(t ElementType) {
	*e = Element{}
	e.SetType(t)
	e[offBaseHeight] = MinimumLandHeight
	e[offClearanceHeight] = MinimumLandHeight
}
