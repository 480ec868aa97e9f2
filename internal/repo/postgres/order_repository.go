package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

const (
	orderColumns = `o.id, o.tracking_number, o.sender_name, o.recipient_name, o.origin, o.destination,
		o.status, o.user_id, o.created_at, o.updated_at`
	ownerColumns = `u.id, u.email, u.name`
)

// Create — вставка нового заказа. Повтор трек-номера — domain.ErrConflict.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ID == "" || order.UserID == "" {
		return errors.New("order id and owner are required")
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO orders (
			id, tracking_number, sender_name, recipient_name, origin, destination,
			status, user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		order.ID, order.TrackingNumber, order.SenderName, order.RecipientName, order.Origin, order.Destination,
		order.Status, order.UserID, order.CreatedAt, order.UpdatedAt,
	)
	return mapErr("insert order", err)
}

// GetByID — заказ вместе с владельцем; (nil, nil), если записи нет.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`, `+ownerColumns+`
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, id)

	order, err := scanOrderWithOwner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr("select order", err)
	}
	return order, nil
}

// GetByTrackingNumber — публичная проекция: без данных владельца.
func (r *OrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.tracking_number = $1
	`, trackingNumber)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr("select order by tracking", err)
	}
	return order, nil
}

// List — страница заказов по фильтру, новые первыми.
func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) ([]*domain.Order, error) {
	where, args := buildWhere(filter)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`, `+ownerColumns+`
		FROM orders o
		JOIN users u ON u.id = o.user_id
		`+where+`
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)),
		args...,
	)
	if err != nil {
		return nil, mapErr("select orders", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, page.Limit)
	for rows.Next() {
		order, err := scanOrderWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("orders rows", err)
	}
	return orders, nil
}

// Count — число заказов по тому же фильтру, что и List.
func (r *OrderRepository) Count(ctx context.Context, filter domain.OrderFilter) (int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders o `+where, args...).Scan(&total); err != nil {
		return 0, mapErr("count orders", err)
	}
	return total, nil
}

// UpdateStatus — compare-and-set: статус меняется, только если он всё ещё равен from.
// (nil, nil) — записи нет или статус уже изменён другим запросом.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	row := r.pool.QueryRow(ctx, `
		WITH o AS (
			UPDATE orders
			SET status = $3, updated_at = now()
			WHERE id = $1 AND status = $2
			RETURNING *
		)
		SELECT `+orderColumns+`, `+ownerColumns+`
		FROM o
		JOIN users u ON u.id = o.user_id
	`, id, from, to)

	order, err := scanOrderWithOwner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr("update order status", err)
	}
	return order, nil
}

// buildWhere — условия фильтра; подстроки имён ищутся без учёта регистра.
func buildWhere(filter domain.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.OwnerID != "" {
		if !validID(filter.OwnerID) {
			// владельца с таким id быть не может
			return "WHERE false", nil
		}
		add("o.user_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		add("o.status = ?", filter.Status)
	}
	if filter.SenderName != "" {
		add("o.sender_name ILIKE ?", "%"+escapeLike(filter.SenderName)+"%")
	}
	if filter.RecipientName != "" {
		add("o.recipient_name ILIKE ?", "%"+escapeLike(filter.RecipientName)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID, &o.TrackingNumber, &o.SenderName, &o.RecipientName, &o.Origin, &o.Destination,
		&o.Status, &o.UserID, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrderWithOwner(row pgx.Row) (*domain.Order, error) {
	var (
		o     domain.Order
		owner domain.UserSummary
	)
	if err := row.Scan(
		&o.ID, &o.TrackingNumber, &o.SenderName, &o.RecipientName, &o.Origin, &o.Destination,
		&o.Status, &o.UserID, &o.CreatedAt, &o.UpdatedAt,
		&owner.ID, &owner.Email, &owner.Name,
	); err != nil {
		return nil, err
	}
	o.User = &owner
	return &o, nil
}
