package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/logistics/internal/cache"
	"github.com/Gunvolt24/logistics/internal/cachekeys"
	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/Gunvolt24/logistics/pkg/generator"
	"github.com/Gunvolt24/logistics/pkg/metrics"
	"github.com/Gunvolt24/logistics/pkg/validate"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var _ ports.OrderService = (*OrderService)(nil)

// OrderService — жизненный цикл заказа: создание, чтение с маскировкой владельца,
// переходы статусов и инвалидация кэша трек-номера (без знаний о транспорте).
type OrderService struct {
	repo      ports.OrderRepository      // реляционное хранилище
	cache     ports.CacheStore           // кэш трек-номеров
	log       ports.Logger               // логгер
	validator ports.OrderValidator       // валидатор входных данных
	publisher ports.OrderEventPublisher  // события для внешних потребителей
	tracking  *generator.TrackingNumber  // генератор трек-номеров
	tracer    trace.Tracer
	now       func() time.Time
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	cache ports.CacheStore,
	log ports.Logger,
	validator ports.OrderValidator,
	publisher ports.OrderEventPublisher,
) *OrderService {
	return &OrderService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
		publisher: publisher,
		tracking:  generator.NewTrackingNumber(),
		tracer:    otel.Tracer("logistics/usecase/orders"),
		now:       time.Now,
	}
}

// Create — новый заказ в статусе PENDING. Кэш не трогаем: нового трек-номера там быть не может.
func (s *OrderService) Create(ctx context.Context, input domain.CreateOrderInput, ownerID string) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create")
	defer func() { finishSpan(span, err) }()

	if err := s.validator.ValidateCreate(ctx, &input); err != nil {
		s.log.Warnf(ctx, "create order rejected owner=%s err=%v", ownerID, err)
		return nil, err
	}

	trackingNumber, err := s.tracking.Next()
	if err != nil {
		return nil, fmt.Errorf("generate tracking number: %w", err)
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:             uuid.NewString(),
		TrackingNumber: trackingNumber,
		SenderName:     input.SenderName,
		RecipientName:  input.RecipientName,
		Origin:         input.Origin,
		Destination:    input.Destination,
		Status:         domain.OrderStatusPending,
		UserID:         ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Errorf(ctx, "repo.Create failed owner=%s err=%v", ownerID, err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, domain.OrderEvent{
		Type:           domain.EventOrderCreated,
		OrderID:        order.ID,
		TrackingNumber: order.TrackingNumber,
		To:             order.Status,
		At:             now,
	})
	s.log.Infof(ctx, "order created id=%s tracking=%s owner=%s", order.ID, order.TrackingNumber, ownerID)
	return order, nil
}

// List — страница заказов. Не-админ видит только свои; count и выборка идут параллельно.
func (s *OrderService) List(
	ctx context.Context,
	filter domain.OrderFilter,
	page domain.PageRequest,
	principal domain.Principal,
) (_ *domain.Page[*domain.Order], err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List")
	defer func() { finishSpan(span, err) }()

	if filter.Status != "" {
		if err := validate.ValidateStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	if !principal.IsAdmin() {
		filter.OwnerID = principal.ID
	}
	page = page.Normalize()

	var (
		orders []*domain.Order
		total  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var listErr error
		orders, listErr = s.repo.List(gctx, filter, page)
		return listErr
	})
	g.Go(func() error {
		var countErr error
		total, countErr = s.repo.Count(gctx, filter)
		return countErr
	})
	if err := g.Wait(); err != nil {
		s.log.Errorf(ctx, "list orders failed user=%s err=%v", principal.ID, err)
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	return &domain.Page[*domain.Order]{Data: orders, Meta: domain.NewPageMeta(total, page)}, nil
}

// GetByID — заказ по id. Чужой заказ для не-админа неотличим от отсутствующего.
func (s *OrderService) GetByID(ctx context.Context, id string, principal domain.Principal) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetByID")
	defer func() { finishSpan(span, err) }()

	return s.load(ctx, id, principal)
}

// TrackByNumber — публичный трекинг через read-through кэш (TTLMedium).
// Отсутствие заказа не кэшируется: каждый такой запрос идёт в хранилище.
func (s *OrderService) TrackByNumber(ctx context.Context, trackingNumber string) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.TrackByNumber",
		trace.WithAttributes(attribute.String("order.tracking_number", trackingNumber)))
	defer func() { finishSpan(span, err) }()

	return cache.GetOrPopulate(ctx, s.cache, cachekeys.OrderByTracking(trackingNumber), cachekeys.TTLMedium,
		func(ctx context.Context) (*domain.Order, error) {
			start := time.Now()
			order, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
			if err != nil {
				s.log.Errorf(ctx, "repo.GetByTrackingNumber failed tracking=%s err=%v", trackingNumber, err)
				return nil, fmt.Errorf("track order: %w", err)
			}
			if order == nil {
				return nil, fmt.Errorf("tracking %s: %w", trackingNumber, domain.ErrNotFound)
			}
			s.log.Infof(ctx, "cache miss tracking=%s db fetch took=%s", trackingNumber, time.Since(start))
			public := *order
			public.User = nil
			return &public, nil
		})
}

// UpdateStatus — переход статуса. Из терминального статуса переходов нет;
// из остальных разрешены только рёбра domain.CanTransition.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.OrderStatus,
	principal domain.Principal,
) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", string(status))))
	defer func() { finishSpan(span, err) }()

	if err := validate.ValidateStatus(status); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrInvalidTransition, id, current.Status)
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, status)
	}
	return s.transition(ctx, current, status)
}

// Cancel — отмена возможна только из PENDING.
func (s *OrderService) Cancel(ctx context.Context, id string, principal domain.Principal) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Cancel", trace.WithAttributes(attribute.String("order.id", id)))
	defer func() { finishSpan(span, err) }()

	current, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.OrderStatusPending {
		return nil, fmt.Errorf("%w: only pending orders can be canceled, order %s is %s",
			domain.ErrInvalidTransition, id, current.Status)
	}
	return s.transition(ctx, current, domain.OrderStatusCanceled)
}

// ApplyCarrierUpdate — статус из ленты перевозчика (raw JSON), применяется от имени системы.
// Неприменимые события оборачиваются в domain.ErrInvalidEvent: повтор не поможет.
func (s *OrderService) ApplyCarrierUpdate(ctx context.Context, raw []byte) error {
	var update domain.CarrierStatusUpdate
	if err := validate.DecodeStrict(raw, &update); err != nil {
		s.log.Warnf(ctx, "carrier update malformed err=%v", err)
		return fmt.Errorf("%w: %w", domain.ErrInvalidEvent, err)
	}
	if update.TrackingNumber == "" || !update.Status.Valid() {
		return fmt.Errorf("%w: tracking=%q status=%q", domain.ErrInvalidEvent, update.TrackingNumber, update.Status)
	}

	order, err := s.repo.GetByTrackingNumber(ctx, update.TrackingNumber)
	if err != nil {
		return fmt.Errorf("carrier update lookup: %w", err)
	}
	if order == nil {
		return fmt.Errorf("%w: unknown tracking %s", domain.ErrInvalidEvent, update.TrackingNumber)
	}
	// повторная доставка того же события
	if order.Status == update.Status {
		s.log.Infof(ctx, "carrier update already applied tracking=%s status=%s", order.TrackingNumber, order.Status)
		return nil
	}

	_, err = s.UpdateStatus(ctx, order.ID, update.Status, domain.SystemPrincipal)
	switch {
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%w: %w", domain.ErrInvalidEvent, err)
	default:
		return err
	}
}

// load — заказ с маскировкой: нет строки или нет доступа — domain.ErrNotFound.
func (s *OrderService) load(ctx context.Context, id string, principal domain.Principal) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed id=%s err=%v", id, err)
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil || !principal.CanAccess(order.UserID) {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return order, nil
}

// transition — запись нового статуса (compare-and-set по текущему), затем инвалидация кэша.
func (s *OrderService) transition(ctx context.Context, current *domain.Order, to domain.OrderStatus) (*domain.Order, error) {
	updated, err := s.repo.UpdateStatus(ctx, current.ID, current.Status, to)
	if err != nil {
		s.log.Errorf(ctx, "repo.UpdateStatus failed id=%s err=%v", current.ID, err)
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: order %s changed concurrently", domain.ErrInvalidTransition, current.ID)
	}

	metrics.OrderTransitions.WithLabelValues(string(current.Status), string(to)).Inc()
	s.invalidateTracking(ctx, updated.TrackingNumber)

	s.publish(ctx, domain.OrderEvent{
		Type:           domain.EventOrderStatusChanged,
		OrderID:        updated.ID,
		TrackingNumber: updated.TrackingNumber,
		From:           current.Status,
		To:             to,
		At:             updated.UpdatedAt,
	})
	s.log.Infof(ctx, "order status changed id=%s %s -> %s", updated.ID, current.Status, to)
	return updated, nil
}

// invalidateTracking — ошибка инвалидации не отменяет уже записанный статус:
// запись в кэше устареет максимум на TTL, это логируется и считается метрикой.
func (s *OrderService) invalidateTracking(ctx context.Context, trackingNumber string) {
	if err := s.cache.Delete(ctx, cachekeys.OrderByTracking(trackingNumber)); err != nil {
		metrics.CacheInvalidationFailures.Inc()
		s.log.Errorf(ctx, "cache invalidation failed tracking=%s err=%v", trackingNumber, err)
	}
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warnf(ctx, "publish %s failed order=%s err=%v", event.Type, event.OrderID, err)
	}
}
