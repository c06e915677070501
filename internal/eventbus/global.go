package eventbus

import (
	"context"
	"errors"
)

// ErrBusClosed - публикация в закрытую шину
var ErrBusClosed = errors.New("шина событий закрыта")

var globalBus EventBus

// Init устанавливает глобальную шину.
func Init(bus EventBus) { globalBus = bus }

// Global возвращает глобальную шину или nil
func Global() EventBus { return globalBus }

// Publish отправляет событие в глобальную шину; без шины событие отбрасывается.
func Publish(ctx context.Context, ev *Envelope) error {
	if globalBus == nil {
		return nil
	}
	return globalBus.Publish(ctx, ev)
}
