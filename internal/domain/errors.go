package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — записи нет или она принадлежит другому пользователю (снаружи неразличимо).
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition — недопустимый переход статуса заказа.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict — нарушение уникальности или ссылочной целостности.
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated — нет валидной сессии или неверные учётные данные.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden — недостаточно прав (только ролевой шлюз транспорта).
	ErrForbidden = errors.New("forbidden")
	// ErrStoreUnavailable — недоступен кэш или реляционное хранилище.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidEvent — событие из внешней ленты нельзя применить (повтор бессмыслен).
	ErrInvalidEvent = errors.New("invalid event")
)

// StoreUnavailable — оборачивает транспортную ошибку хранилища.
func StoreUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
