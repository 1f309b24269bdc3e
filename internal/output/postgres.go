package output

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/restodata/restogen/internal/models"
)

// PostgresOutput bulk-loads the dataset into relational tables using
// CopyFrom. Each run recreates the table contents from scratch.
type PostgresOutput struct {
	pool *pgxpool.Pool
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		phone TEXT,
		segment TEXT,
		registration_date DATE,
		total_spent NUMERIC(12,2),
		orders_count INT,
		loyalty_points INT,
		last_order_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id TEXT PRIMARY KEY,
		name TEXT,
		category TEXT,
		price NUMERIC(10,2),
		cost NUMERIC(10,2),
		description TEXT,
		availability BOOLEAN,
		allergens TEXT[],
		preparation_time INT
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT,
		created_at TIMESTAMPTZ,
		order_type TEXT,
		status TEXT,
		total_amount NUMERIC(12,2),
		subtotal NUMERIC(12,2),
		discount NUMERIC(12,2),
		tax NUMERIC(12,2),
		payment_mode TEXT,
		items JSONB,
		special_instructions TEXT,
		delivery_address TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_details (
		id TEXT PRIMARY KEY,
		order_id TEXT,
		delivery_person TEXT,
		pickup_time TIMESTAMPTZ,
		delivery_time TIMESTAMPTZ,
		delivery_status TEXT,
		delivery_fee NUMERIC(10,2),
		distance_km NUMERIC(10,2),
		customer_rating INT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT,
		role TEXT,
		email TEXT,
		hire_date DATE,
		active BOOLEAN,
		permissions TEXT[]
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id TEXT PRIMARY KEY,
		ts TIMESTAMPTZ,
		user_id TEXT,
		action TEXT,
		resource TEXT,
		resource_id TEXT,
		details TEXT
	)`,
}

func NewPostgresOutput(ctx context.Context, cfg models.PostgresConfig) (*PostgresOutput, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, &SinkError{Sink: "postgres", Err: fmt.Errorf("connecting: %w", err)}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &SinkError{Sink: "postgres", Err: fmt.Errorf("pinging database: %w", err)}
	}
	return &PostgresOutput{pool: pool}, nil
}

func (p *PostgresOutput) WriteDataset(ctx context.Context, dataset *models.Dataset) error {
	for _, ddl := range postgresSchema {
		if _, err := p.pool.Exec(ctx, ddl); err != nil {
			return &SinkError{Sink: "postgres", Err: fmt.Errorf("creating tables: %w", err)}
		}
	}

	steps := []struct {
		table string
		load  func(context.Context) (int64, error)
	}{
		{models.CollectionCustomers, func(ctx context.Context) (int64, error) { return p.copyCustomers(ctx, dataset.Customers) }},
		{models.CollectionMenuItems, func(ctx context.Context) (int64, error) { return p.copyMenuItems(ctx, dataset.MenuItems) }},
		{models.CollectionOrders, func(ctx context.Context) (int64, error) { return p.copyOrders(ctx, dataset.Orders) }},
		{models.CollectionDeliveryDetails, func(ctx context.Context) (int64, error) { return p.copyDeliveryDetails(ctx, dataset.DeliveryDetails) }},
		{models.CollectionUsers, func(ctx context.Context) (int64, error) { return p.copyUsers(ctx, dataset.Users) }},
		{models.CollectionAuditLogs, func(ctx context.Context) (int64, error) { return p.copyAuditLogs(ctx, dataset.AuditLogs) }},
	}

	for _, step := range steps {
		if _, err := p.pool.Exec(ctx, "TRUNCATE "+step.table); err != nil {
			return &SinkError{Sink: "postgres", Err: fmt.Errorf("truncating %s: %w", step.table, err)}
		}
		count, err := step.load(ctx)
		if err != nil {
			return &SinkError{Sink: "postgres", Err: fmt.Errorf("loading %s: %w", step.table, err)}
		}
		log.WithFields(logrus.Fields{"table": step.table, "records": count}).Info("copied table")
	}
	return nil
}

func (p *PostgresOutput) copyCustomers(ctx context.Context, customers []*models.Customer) (int64, error) {
	return p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"customers"},
		[]string{"id", "name", "email", "phone", "segment", "registration_date", "total_spent", "orders_count", "loyalty_points", "last_order_date"},
		pgx.CopyFromSlice(len(customers), func(i int) ([]interface{}, error) {
			c := customers[i]
			return []interface{}{
				c.CustomerID, c.Name, c.Email, c.Phone, c.Segment,
				c.RegistrationDate, c.TotalSpent, c.OrdersCount, c.LoyaltyPoints,
				nullableDate(c.LastOrderDate),
			}, nil
		}),
	)
}

func (p *PostgresOutput) copyMenuItems(ctx context.Context, items []*models.MenuItem) (int64, error) {
	return p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{"id", "name", "category", "price", "cost", "description", "availability", "allergens", "preparation_time"},
		pgx.CopyFromSlice(len(items), func(i int) ([]interface{}, error) {
			m := items[i]
			return []interface{}{
				m.ItemID, m.Name, m.Category, m.Price, m.Cost,
				m.Description, m.Availability, m.Allergens, m.PreparationTime,
			}, nil
		}),
	)
}

func (p *PostgresOutput) copyOrders(ctx context.Context, orders []*models.Order) (int64, error) {
	return p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"orders"},
		[]string{"id", "customer_id", "created_at", "order_type", "status", "total_amount", "subtotal", "discount", "tax", "payment_mode", "items", "special_instructions", "delivery_address"},
		pgx.CopyFromSlice(len(orders), func(i int) ([]interface{}, error) {
			o := orders[i]
			items, err := json.Marshal(o.Items)
			if err != nil {
				return nil, err
			}
			return []interface{}{
				o.OrderID, o.CustomerID, o.CreatedAt, o.OrderType, o.Status,
				o.TotalAmount, o.Subtotal, o.Discount, o.Tax, o.PaymentMode,
				items, o.SpecialInstructions, nullableText(o.DeliveryAddress),
			}, nil
		}),
	)
}

func (p *PostgresOutput) copyDeliveryDetails(ctx context.Context, details []*models.DeliveryDetail) (int64, error) {
	return p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"delivery_details"},
		[]string{"id", "order_id", "delivery_person", "pickup_time", "delivery_time", "delivery_status", "delivery_fee", "distance_km", "customer_rating"},
		pgx.CopyFromSlice(len(details), func(i int) ([]interface{}, error) {
			d := details[i]
			return []interface{}{
				d.ID, d.OrderID, d.DeliveryPerson, d.PickupTime, d.DeliveryTime,
				d.DeliveryStatus, d.DeliveryFee, d.DistanceKm, d.CustomerRating,
			}, nil
		}),
	)
}

func (p *PostgresOutput) copyUsers(ctx context.Context, users []*models.StaffUser) (int64, error) {
	return p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"users"},
		[]string{"id", "name", "role", "email", "hire_date", "active", "permissions"},
		pgx.CopyFromSlice(len(users), func(i int) ([]interface{}, error) {
			u := users[i]
			return []interface{}{
				u.UserID, u.Name, u.Role, u.Email, u.HireDate, u.Active, u.Permissions,
			}, nil
		}),
	)
}

func (p *PostgresOutput) copyAuditLogs(ctx context.Context, entries []*models.AuditLogEntry) (int64, error) {
	return p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"audit_logs"},
		[]string{"id", "ts", "user_id", "action", "resource", "resource_id", "details"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]interface{}, error) {
			a := entries[i]
			return []interface{}{
				a.ID, a.Timestamp, a.UserID, a.Action, a.Resource, a.ResourceID, a.Details,
			}, nil
		}),
	)
}

func nullableText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableDate(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}
