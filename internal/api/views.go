package api

import (
	"encoding/hex"

	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/annel0/park-engine/internal/world"
)

// ElementView - разобранный элемент тайла для ответа API
type ElementView struct {
	Index           int            `json:"index"`
	Type            string         `json:"type"`
	BaseHeight      uint8          `json:"base_height"`
	ClearanceHeight uint8          `json:"clearance_height"`
	BaseZ           int            `json:"base_z"`
	Direction       uint8          `json:"direction"`
	Quadrants       uint8          `json:"quadrants"`
	Owner           uint8          `json:"owner"`
	Ghost           bool           `json:"ghost"`
	Invisible       bool           `json:"invisible"`
	Last            bool           `json:"last"`
	Underground     bool           `json:"underground"`
	Payload         string         `json:"payload"`
	Details         map[string]any `json:"details,omitempty"`
}

// TileView - цепочка элементов тайла
type TileView struct {
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Elements []ElementView `json:"elements"`
}

// MapView - сводка по карте
type MapView struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Elements int    `json:"elements"`
	Banners  int    `json:"banners"`
}

func newTileView(pos vec.Vec2, run []tile.Element, objs tile.ObjectLookup) TileView {
	view := TileView{X: pos.X, Y: pos.Y, Elements: make([]ElementView, 0, len(run))}
	for i := range run {
		e := &run[i]
		payload := e.Payload()
		view.Elements = append(view.Elements, ElementView{
			Index:           i,
			Type:            e.GetType().String(),
			BaseHeight:      e.BaseHeight(),
			ClearanceHeight: e.ClearanceHeight(),
			BaseZ:           e.GetBaseZ(),
			Direction:       uint8(e.GetDirection()),
			Quadrants:       e.GetOccupiedQuadrants(),
			Owner:           e.GetOwner(),
			Ghost:           e.IsGhost(),
			Invisible:       e.IsInvisible(),
			Last:            e.IsLastForTile(),
			Underground:     tile.IsUnderground(run, i),
			Payload:         hex.EncodeToString(payload[:]),
			Details:         elementDetails(e, run, objs),
		})
	}
	return view
}

// elementDetails возвращает поля, специфичные для вида элемента
func elementDetails(e *tile.Element, run []tile.Element, objs tile.ObjectLookup) map[string]any {
	d := map[string]any{}
	if ride := e.GetRideIndex(); !ride.IsNull() {
		d["ride"] = ride
	}
	if banner := e.GetBannerIndex(objs); !banner.IsNull() {
		d["banner"] = banner
	}

	switch e.GetType() {
	case tile.TypeSurface:
		s := e.AsSurface()
		d["slope"] = s.GetSlope()
		d["water_height"] = s.GetWaterHeight()
		d["grass_length"] = s.GetGrassLength()
		d["ownership"] = s.GetOwnership()
		if obj := s.GetSurfaceObject(objs); obj != nil {
			d["surface"] = obj.Name
		}
	case tile.TypePath:
		p := e.AsPath()
		d["queue"] = p.IsQueue()
		d["sloped"] = p.IsSloped()
		d["edges"] = p.GetEdges()
		d["level_crossing"] = p.IsLevelCrossing(run)
		if !p.IsQueue() {
			d["addition_status"] = p.GetAdditionStatus()
		}
	case tile.TypeTrack:
		t := e.AsTrack()
		d["track_type"] = t.GetTrackType()
		d["sequence"] = t.GetSequenceIndex()
		d["station"] = t.GetStationIndex()
		d["chain"] = t.HasChain()
	case tile.TypeSmallScenery:
		s := e.AsSmallScenery()
		d["entry"] = s.GetEntryIndex()
		d["age"] = s.GetAge()
	case tile.TypeLargeScenery:
		l := e.AsLargeScenery()
		d["entry"] = l.GetEntryIndex()
		d["sequence"] = l.GetSequenceIndex()
	case tile.TypeWall:
		w := e.AsWall()
		d["entry"] = w.GetEntryIndex()
		d["slope"] = w.GetSlope()
	case tile.TypeEntrance:
		n := e.AsEntrance()
		d["kind"] = n.GetEntranceKind()
		d["station"] = n.GetStationIndex()
	case tile.TypeBanner:
		b := e.AsBanner()
		d["position"] = b.GetPosition()
		d["allowed_edges"] = b.GetAllowedEdges()
	}
	return d
}

func newMapView(p *Park) MapView {
	size := p.Map.Size()
	return MapView{
		Name:     p.Name,
		Width:    size.X,
		Height:   size.Y,
		Elements: p.Map.ElementCount(),
		Banners:  p.Banners.Len(),
	}
}

var _ tile.ObjectLookup = (*world.ObjectTable)(nil)
