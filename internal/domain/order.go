package domain

import "time"

// OrderStatus — статус отправления.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// transitions — допустимые переходы статусов.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusInTransit, OrderStatusCanceled},
	OrderStatusInTransit: {OrderStatusDelivered},
}

// Valid — известен ли статус.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInTransit, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// IsTerminal — из DELIVERED и CANCELED переходов нет.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// CanTransition — разрешён ли переход from -> to.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order — отправление. TrackingNumber назначается один раз при создании и не меняется.
type Order struct {
	ID             string       `json:"id"`
	TrackingNumber string       `json:"trackingNumber"`
	SenderName     string       `json:"senderName"`
	RecipientName  string       `json:"recipientName"`
	Origin         string       `json:"origin"`
	Destination    string       `json:"destination"`
	Status         OrderStatus  `json:"status"`
	UserID         string       `json:"-"`
	User           *UserSummary `json:"user,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// CreateOrderInput — поля нового отправления.
type CreateOrderInput struct {
	SenderName    string `json:"senderName"    validate:"required,min=2,max=100"`
	RecipientName string `json:"recipientName" validate:"required,min=2,max=100"`
	Origin        string `json:"origin"        validate:"required,min=2,max=200"`
	Destination   string `json:"destination"   validate:"required,min=2,max=200"`
}

// OrderFilter — фильтр списка заказов. OwnerID пустой — без ограничения владельцем.
type OrderFilter struct {
	OwnerID       string
	Status        OrderStatus
	SenderName    string
	RecipientName string
}

// OrderEvent — событие жизненного цикла заказа для внешних потребителей.
type OrderEvent struct {
	Type           string      `json:"type"`
	OrderID        string      `json:"orderId"`
	TrackingNumber string      `json:"trackingNumber"`
	From           OrderStatus `json:"from,omitempty"`
	To             OrderStatus `json:"to"`
	At             time.Time   `json:"at"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// CarrierStatusUpdate — сообщение от перевозчика о смене статуса.
type CarrierStatusUpdate struct {
	TrackingNumber string      `json:"trackingNumber"`
	Status         OrderStatus `json:"status"`
}
