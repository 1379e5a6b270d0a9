package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `SELECT` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT ?`
	args := []any{query.Limit()}
	if !query.Viewer().IsAdmin() {
		viewer := query.Viewer().UserID().String()
		sqlQuery = `SELECT` + orderColumns + `
		FROM orders
		WHERE buyer_id = ? OR vendor_id = ?
		ORDER BY created_at DESC
		LIMIT ?`
		args = []any{viewer, viewer, query.Limit()}
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		result = append(result, ListOrdersQueryResponse{
			ID:           o.ID(),
			BuyerID:      o.BuyerID(),
			VendorID:     o.VendorID(),
			ServiceID:    o.ServiceID(),
			DeliveryType: o.DeliveryType(),
			Status:       o.Status(),
			Amount:       o.Amount(),
			Version:      o.Version(),
			CreatedAt:    o.CreatedAt(),
			UpdatedAt:    o.UpdatedAt(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
