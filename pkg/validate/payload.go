package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
)

// DecodeStrict — строгий разбор JSON-объекта: неизвестные поля и хвост после объекта запрещены.
func DecodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("invalid json: trailing data")
	}
	return nil
}

// CreateOrderFromJSON — разбор и валидация payload'а создания заказа.
func CreateOrderFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.CreateOrderInput, error) {
	var input domain.CreateOrderInput
	if err := DecodeStrict(raw, &input); err != nil {
		return nil, err
	}
	if err := validator.ValidateCreate(ctx, &input); err != nil {
		return nil, err
	}
	return &input, nil
}
