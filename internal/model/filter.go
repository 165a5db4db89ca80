package model

import "github.com/shopspring/decimal"

// Фильтры списков. nil / пустое значение - фильтр не применяется

type AutoSalonFilter struct {
	Name     string
	IsActive *bool
}

type CarFilter struct {
	ModelName   string
	IsActive    *bool
	AutoSalonID int64
}

type OptionCarFilter struct {
	MileageMin *int
	MileageMax *int
	Color      string
	BodyType   string
}

type SupplierFilter struct {
	Name     string
	IsActive *bool
	Price    decimal.NullDecimal
}

type OfferFilter struct {
	Name        string
	DiscountMin *int
	DiscountMax *int
	IsActive    *bool
	OwnerID     int64
}

type CustomerFilter struct {
	Email string
	Role  Role
}

type SaleHistoryFilter struct {
	AutoSalonID int64
	SupplierID  int64
}

type CustomerSaleHistoryFilter struct {
	CustomerID int64
	CarID      int64
}
