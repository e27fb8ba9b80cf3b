package adapters

import (
	"database/sql"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/models/store"
)

func MapStoreOrderRowToDomain(row store.OrderRow) domain.Order {
	return domain.Order{
		OrderID:       row.OrderID.String,
		CustomerID:    row.CustomerID.String,
		CustomerState: row.CustomerState.String,
		Status:        row.Status.String,
		PurchasedAt:   row.PurchasedAt,
		PaymentValue:  row.PaymentValue.Float64,
	}
}

func MapDomainOrderToStoreRow(order domain.Order) store.OrderRow {
	return store.OrderRow{
		OrderID:       text(order.OrderID),
		CustomerID:    text(order.CustomerID),
		CustomerState: text(order.CustomerState),
		Status:        text(order.Status),
		PurchasedAt:   order.PurchasedAt,
		PaymentValue:  sql.NullFloat64{Float64: order.PaymentValue, Valid: true},
	}
}

func MapStorePaymentRowToDomain(row store.PaymentRow) domain.Payment {
	return domain.Payment{
		OrderID:     row.OrderID.String,
		Type:        row.PaymentType.String,
		Value:       row.Value.Float64,
		PurchasedAt: row.PurchasedAt,
	}
}

func MapDomainPaymentToStoreRow(payment domain.Payment) store.PaymentRow {
	return store.PaymentRow{
		OrderID:     text(payment.OrderID),
		PaymentType: text(payment.Type),
		Value:       sql.NullFloat64{Float64: payment.Value, Valid: true},
		PurchasedAt: payment.PurchasedAt,
	}
}

func MapStoreSellerRowToDomain(row store.SellerRow) domain.Seller {
	return domain.Seller{
		SellerID:      row.SellerID.String,
		State:         row.State.String,
		City:          row.City.String,
		ZipCodePrefix: row.ZipCodePrefix.String,
	}
}

func MapDomainSellerToStoreRow(seller domain.Seller) store.SellerRow {
	return store.SellerRow{
		SellerID:      text(seller.SellerID),
		State:         text(seller.State),
		City:          optionalText(seller.City),
		ZipCodePrefix: optionalText(seller.ZipCodePrefix),
	}
}

// text writes a required column; an empty value is stored as "".
func text(value string) sql.NullString {
	return sql.NullString{String: value, Valid: true}
}

func optionalText(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
