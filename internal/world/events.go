package world

import (
	"context"

	"github.com/annel0/park-engine/internal/eventbus"
	"github.com/annel0/park-engine/internal/logging"
	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
)

// ChangeKind определяет тип изменения карты
type ChangeKind uint8

const (
	ChangeInserted ChangeKind = iota // Вставка элемента
	ChangeRemoved                    // Удаление элемента
	ChangeUpdated                    // Изменение полей элемента
	ChangeResized                    // Изменение размера карты
)

// String возвращает имя изменения (используется как тип события шины)
func (k ChangeKind) String() string {
	switch k {
	case ChangeInserted:
		return "ElementInserted"
	case ChangeRemoved:
		return "ElementRemoved"
	case ChangeUpdated:
		return "ElementUpdated"
	case ChangeResized:
		return "MapResized"
	default:
		return "Unknown"
	}
}

// ChangeEvent описывает одно изменение карты.
// Для ChangeResized Pos содержит новый размер карты, Index не используется.
type ChangeEvent struct {
	Kind        ChangeKind
	Pos         vec.Vec2
	Index       int // позиция в цепочке тайла
	ElementType tile.ElementType
}

// ChangeListener получает изменения карты синхронно, в потоке записи
type ChangeListener func(ev ChangeEvent)

// changePayload - полезная нагрузка события шины
type changePayload struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Index   int    `json:"index"`
	Element string `json:"element,omitempty"`
}

// NewEventBusListener публикует изменения карты в шину событий.
// Ошибки публикации только логируются: карта не откатывает изменение.
func NewEventBusListener(bus eventbus.EventBus, source string) ChangeListener {
	return func(ev ChangeEvent) {
		payload := changePayload{X: ev.Pos.X, Y: ev.Pos.Y, Index: ev.Index}
		if ev.Kind != ChangeResized {
			payload.Element = ev.ElementType.String()
		}

		env, err := eventbus.NewEnvelope(source, ev.Kind.String(), payload)
		if err != nil {
			logging.GetMapLogger().Error("Не удалось сериализовать событие %s: %v", ev.Kind, err)
			return
		}
		if ev.Kind == ChangeResized {
			env.Priority = 7
		}
		if err := bus.Publish(context.Background(), env); err != nil {
			logging.GetMapLogger().Warn("Событие %s не опубликовано: %v", ev.Kind, err)
		}
	}
}
