// Package orderrepo maps the Order aggregate to the orders table.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of orders. Status and delivery type are stored as
// their canonical strings.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	VendorID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID        uuid.UUID `gorm:"type:uuid;not null"`
	DeliveryType     string    `gorm:"type:varchar(16);not null"`
	Status           string    `gorm:"type:varchar(32);not null;index"`
	AmountMinor      int64     `gorm:"not null"`
	Currency         string    `gorm:"type:char(3);not null"`
	Requirements     string    `gorm:"type:text;not null;default:''"`
	RevisionsAllowed int       `gorm:"not null;default:0"`
	RevisionsUsed    int       `gorm:"not null;default:0"`
	Version          int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:               o.ID().Google(),
		BuyerID:          o.BuyerID().Google(),
		VendorID:         o.VendorID().Google(),
		ServiceID:        o.ServiceID().Google(),
		DeliveryType:     o.DeliveryType().String(),
		Status:           o.Status().String(),
		AmountMinor:      o.Amount().Minor(),
		Currency:         o.Amount().Currency(),
		Requirements:     o.Requirements(),
		RevisionsAllowed: o.RevisionsAllowed(),
		RevisionsUsed:    o.RevisionsUsed(),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	buyer, err := kernel.UUIDFromGoogle(dto.BuyerID)
	if err != nil {
		return nil, err
	}
	vendor, err := kernel.UUIDFromGoogle(dto.VendorID)
	if err != nil {
		return nil, err
	}
	service, err := kernel.UUIDFromGoogle(dto.ServiceID)
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.AmountMinor, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		order.Parties{Buyer: buyer, Vendor: vendor, Service: service},
		order.Terms{
			DeliveryType:     deliveryType,
			Amount:           amount,
			Requirements:     dto.Requirements,
			RevisionsAllowed: dto.RevisionsAllowed,
		},
		status,
		dto.RevisionsUsed,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
