package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderStore struct {
	pool *pgxpool.Pool
}

var (
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrInsufficientStock       = errors.New("insufficient stock")
)

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// CreateWithItems inserts the order and its items and reserves stock in a
// single transaction. On success order.ID, item ids and timestamps are set.
func (s *OrderStore) CreateWithItems(ctx context.Context, order *Order) error {
	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	var couponCode *string
	if order.CouponCode != "" {
		couponCode = &order.CouponCode
	}
	if order.Status == "" {
		order.Status = StatusPending
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (
				user_id, customer_email, customer_name, shipping_address, payment_method, coupon_code,
				subtotal, discount_percentage, discount_amount, tax_percentage, tax_amount,
				delivery_charge, cod_charge, net_total, status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id, created_at, updated_at
		`, order.UserID, order.CustomerEmail, order.CustomerName, addressJSON, order.PaymentMethod, couponCode,
			order.Subtotal, order.DiscountPercentage, order.DiscountAmount, order.TaxPercentage, order.TaxAmount,
			order.DeliveryCharge, order.CODCharge, order.NetTotal, order.Status,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			tag, err := tx.Exec(ctx, `
				UPDATE products SET stock = stock - $1, updated_at = NOW()
				WHERE id = $2 AND stock >= $1
			`, item.Quantity, item.ProductID)
			if err != nil {
				return fmt.Errorf("reserve stock for product %d: %w", item.ProductID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
			}

			err = tx.QueryRow(ctx, `
				INSERT INTO order_items (order_id, product_id, name, size, color, quantity, unit_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id
			`, order.ID, item.ProductID, item.Name, item.Size, item.Color, item.Quantity, item.UnitPrice,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
}

func (s *OrderStore) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	var (
		order       Order
		addressJSON []byte
		couponCode  *string
		method      *string
		terms       *string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, customer_email, customer_name, shipping_address, payment_method, coupon_code,
		       subtotal, discount_percentage, discount_amount, tax_percentage, tax_amount,
		       delivery_charge, cod_charge, net_total, status, shipping_method, shipping_terms,
		       shipment_date, delivery_date, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&order.ID, &order.UserID, &order.CustomerEmail, &order.CustomerName, &addressJSON, &order.PaymentMethod,
		&couponCode, &order.Subtotal, &order.DiscountPercentage, &order.DiscountAmount, &order.TaxPercentage,
		&order.TaxAmount, &order.DeliveryCharge, &order.CODCharge, &order.NetTotal, &order.Status,
		&method, &terms, &order.ShipmentDate, &order.DeliveryDate, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if couponCode != nil {
		order.CouponCode = *couponCode
	}
	if method != nil {
		order.ShippingMethod = *method
	}
	if terms != nil {
		order.ShippingTerms = *terms
	}

	items, err := s.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// UpdateShipping records dispatch details and moves a pending order to
// shipped. Orders already shipped can have their details corrected.
func (s *OrderStore) UpdateShipping(ctx context.Context, orderID int64, update ShipmentUpdate) error {
	cmdTag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET status = $1, shipping_method = $2, shipping_terms = $3, shipment_date = $4,
		    delivery_date = $5, updated_at = NOW()
		WHERE id = $6 AND status IN ('pending', 'shipped')
	`, StatusShipped, update.ShippingMethod, update.ShippingTerms, update.ShipmentDate, update.DeliveryDate, orderID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return fmt.Errorf("%w: expected pending/shipped", ErrInvalidStatusTransition)
}

func (s *OrderStore) listItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, product_id, name, size, color, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Size, &item.Color,
			&item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
