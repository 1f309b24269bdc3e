package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/restodata/restogen/internal/models"
)

// Parquet rows are flattened: list-valued fields are serialized as
// comma-joined strings so every collection keeps a flat schema.
type customerRow struct {
	ID               string  `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name             string  `parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Email            string  `parquet:"name=email,type=BYTE_ARRAY,convertedtype=UTF8"`
	Phone            string  `parquet:"name=phone,type=BYTE_ARRAY,convertedtype=UTF8"`
	Segment          string  `parquet:"name=segment,type=BYTE_ARRAY,convertedtype=UTF8"`
	RegistrationDate string  `parquet:"name=registration_date,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalSpent       float64 `parquet:"name=total_spent,type=DOUBLE"`
	OrdersCount      int32   `parquet:"name=orders_count,type=INT32"`
	LoyaltyPoints    int32   `parquet:"name=loyalty_points,type=INT32"`
	LastOrderDate    string  `parquet:"name=last_order_date,type=BYTE_ARRAY,convertedtype=UTF8"`
}

type menuItemRow struct {
	ID              string  `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name            string  `parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category        string  `parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	Price           float64 `parquet:"name=price,type=DOUBLE"`
	Cost            float64 `parquet:"name=cost,type=DOUBLE"`
	Availability    bool    `parquet:"name=availability,type=BOOLEAN"`
	Allergens       string  `parquet:"name=allergens,type=BYTE_ARRAY,convertedtype=UTF8"`
	PreparationTime int32   `parquet:"name=preparation_time,type=INT32"`
}

type orderRow struct {
	ID                  string  `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CustomerID          string  `parquet:"name=customer_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CreatedAt           string  `parquet:"name=created_at,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderType           string  `parquet:"name=order_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	Status              string  `parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalAmount         float64 `parquet:"name=total_amount,type=DOUBLE"`
	Subtotal            float64 `parquet:"name=subtotal,type=DOUBLE"`
	Discount            float64 `parquet:"name=discount,type=DOUBLE"`
	Tax                 float64 `parquet:"name=tax,type=DOUBLE"`
	PaymentMode         string  `parquet:"name=payment_mode,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemIDs             string  `parquet:"name=item_ids,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemCount           int32   `parquet:"name=item_count,type=INT32"`
	SpecialInstructions string  `parquet:"name=special_instructions,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeliveryAddress     string  `parquet:"name=delivery_address,type=BYTE_ARRAY,convertedtype=UTF8"`
}

type deliveryRow struct {
	ID             string  `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID        string  `parquet:"name=order_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeliveryPerson string  `parquet:"name=delivery_person,type=BYTE_ARRAY,convertedtype=UTF8"`
	PickupTime     string  `parquet:"name=pickup_time,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeliveryTime   string  `parquet:"name=delivery_time,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeliveryStatus string  `parquet:"name=delivery_status,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeliveryFee    float64 `parquet:"name=delivery_fee,type=DOUBLE"`
	DistanceKm     float64 `parquet:"name=distance_km,type=DOUBLE"`
	CustomerRating int32   `parquet:"name=customer_rating,type=INT32"`
}

type staffRow struct {
	ID          string `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name        string `parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Role        string `parquet:"name=role,type=BYTE_ARRAY,convertedtype=UTF8"`
	Email       string `parquet:"name=email,type=BYTE_ARRAY,convertedtype=UTF8"`
	HireDate    string `parquet:"name=hire_date,type=BYTE_ARRAY,convertedtype=UTF8"`
	Active      bool   `parquet:"name=active,type=BOOLEAN"`
	Permissions string `parquet:"name=permissions,type=BYTE_ARRAY,convertedtype=UTF8"`
}

type auditRow struct {
	ID         string `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp  string `parquet:"name=timestamp,type=BYTE_ARRAY,convertedtype=UTF8"`
	UserID     string `parquet:"name=user_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Action     string `parquet:"name=action,type=BYTE_ARRAY,convertedtype=UTF8"`
	Resource   string `parquet:"name=resource,type=BYTE_ARRAY,convertedtype=UTF8"`
	ResourceID string `parquet:"name=resource_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Details    string `parquet:"name=details,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// ParquetOutput writes one parquet file per collection next to the
// JSON output.
type ParquetOutput struct {
	basePath string
	folder   string
}

func NewParquetOutput(basePath, folder string) *ParquetOutput {
	return &ParquetOutput{basePath: basePath, folder: folder}
}

func (p *ParquetOutput) WriteDataset(ctx context.Context, dataset *models.Dataset) error {
	dir := filepath.Join(p.basePath, p.folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return &SinkError{Sink: "parquet", Err: fmt.Errorf("creating output directory: %w", err)}
	}

	files := []struct {
		name   string
		schema interface{}
		rows   []interface{}
	}{
		{models.CollectionCustomers, new(customerRow), customerRows(dataset.Customers)},
		{models.CollectionMenuItems, new(menuItemRow), menuItemRows(dataset.MenuItems)},
		{models.CollectionOrders, new(orderRow), orderRows(dataset.Orders)},
		{models.CollectionDeliveryDetails, new(deliveryRow), deliveryRows(dataset.DeliveryDetails)},
		{models.CollectionUsers, new(staffRow), staffRows(dataset.Users)},
		{models.CollectionAuditLogs, new(auditRow), auditRows(dataset.AuditLogs)},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name+".parquet")
		if err := writeParquetFile(path, f.schema, f.rows); err != nil {
			return &SinkError{Sink: "parquet", Err: fmt.Errorf("writing %s: %w", f.name, err)}
		}
		log.WithFields(logrus.Fields{"collection": f.name, "records": len(f.rows), "path": path}).Info("wrote parquet file")
	}
	return nil
}

func writeParquetFile(path string, schema interface{}, rows []interface{}) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("creating parquet writer: %w", err)
	}

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			fw.Close()
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalizing file: %w", err)
	}
	return fw.Close()
}

func customerRows(customers []*models.Customer) []interface{} {
	rows := make([]interface{}, len(customers))
	for i, c := range customers {
		rows[i] = customerRow{
			ID:               c.CustomerID,
			Name:             c.Name,
			Email:            c.Email,
			Phone:            c.Phone,
			Segment:          c.Segment,
			RegistrationDate: c.RegistrationDate,
			TotalSpent:       c.TotalSpent,
			OrdersCount:      int32(c.OrdersCount),
			LoyaltyPoints:    int32(c.LoyaltyPoints),
			LastOrderDate:    c.LastOrderDate,
		}
	}
	return rows
}

func menuItemRows(items []*models.MenuItem) []interface{} {
	rows := make([]interface{}, len(items))
	for i, m := range items {
		rows[i] = menuItemRow{
			ID:              m.ItemID,
			Name:            m.Name,
			Category:        m.Category,
			Price:           m.Price,
			Cost:            m.Cost,
			Availability:    m.Availability,
			Allergens:       strings.Join(m.Allergens, ","),
			PreparationTime: int32(m.PreparationTime),
		}
	}
	return rows
}

func orderRows(orders []*models.Order) []interface{} {
	rows := make([]interface{}, len(orders))
	for i, o := range orders {
		itemIDs := make([]string, len(o.Items))
		for j, item := range o.Items {
			itemIDs[j] = item.MenuItemID
		}
		rows[i] = orderRow{
			ID:                  o.OrderID,
			CustomerID:          o.CustomerID,
			CreatedAt:           o.CreatedAt,
			OrderType:           o.OrderType,
			Status:              o.Status,
			TotalAmount:         o.TotalAmount,
			Subtotal:            o.Subtotal,
			Discount:            o.Discount,
			Tax:                 o.Tax,
			PaymentMode:         o.PaymentMode,
			ItemIDs:             strings.Join(itemIDs, ","),
			ItemCount:           int32(len(o.Items)),
			SpecialInstructions: o.SpecialInstructions,
			DeliveryAddress:     o.DeliveryAddress,
		}
	}
	return rows
}

func deliveryRows(details []*models.DeliveryDetail) []interface{} {
	rows := make([]interface{}, len(details))
	for i, d := range details {
		rows[i] = deliveryRow{
			ID:             d.ID,
			OrderID:        d.OrderID,
			DeliveryPerson: d.DeliveryPerson,
			PickupTime:     d.PickupTime,
			DeliveryTime:   d.DeliveryTime,
			DeliveryStatus: d.DeliveryStatus,
			DeliveryFee:    d.DeliveryFee,
			DistanceKm:     d.DistanceKm,
			CustomerRating: int32(d.CustomerRating),
		}
	}
	return rows
}

func staffRows(users []*models.StaffUser) []interface{} {
	rows := make([]interface{}, len(users))
	for i, u := range users {
		rows[i] = staffRow{
			ID:          u.UserID,
			Name:        u.Name,
			Role:        u.Role,
			Email:       u.Email,
			HireDate:    u.HireDate,
			Active:      u.Active,
			Permissions: strings.Join(u.Permissions, ","),
		}
	}
	return rows
}

func auditRows(entries []*models.AuditLogEntry) []interface{} {
	rows := make([]interface{}, len(entries))
	for i, a := range entries {
		rows[i] = auditRow{
			ID:         a.ID,
			Timestamp:  a.Timestamp,
			UserID:     a.UserID,
			Action:     a.Action,
			Resource:   a.Resource,
			ResourceID: a.ResourceID,
			Details:    a.Details,
		}
	}
	return rows
}

func (p *ParquetOutput) Close() error {
	return nil
}
