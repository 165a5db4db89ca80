package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Каталог

type AutoSalon struct {
	ID          int64
	Name        string
	Location    string
	Balance     decimal.Decimal
	IsActive    bool
	SupplierIDs []int64
	CustomerIDs []int64
	CarIDs      []int64
}

type Car struct {
	ID           int64
	ModelName    string
	IsActive     bool
	AutoSalonIDs []int64
	OptionIDs    []int64
}

type OptionCar struct {
	ID               int64
	Year             time.Time
	Mileage          int
	BodyType         string
	TransmissionType string
	DriveUnitType    string
	Color            string
	EngineType       string
	IsActive         bool
}

type Supplier struct {
	ID          int64
	Name        string
	YearOfIssue time.Time
	Price       decimal.Decimal
	IsActive    bool
	CarIDs      []int64
}

// Журнал сделок. Записи только добавляются

type SaleHistory struct {
	ID          int64
	AutoSalonID int64
	SupplierID  int64
	Price       decimal.Decimal
	CreatedAt   time.Time
}

type CustomerSaleHistory struct {
	ID         int64
	CustomerID int64
	CarID      int64
	Price      decimal.Decimal
	Date       time.Time
}

// Спецпредложения

type SpecialOffer struct {
	ID        int64
	Name      string
	Descr     string
	Discount  int
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// ActiveAt reports whether the offer applies at t: flag set and t in [StartDate, EndDate).
func (o SpecialOffer) ActiveAt(t time.Time) bool {
	return o.IsActive && !t.Before(o.StartDate) && t.Before(o.EndDate)
}

type SupplierOffer struct {
	SpecialOffer
	SupplierID int64
}

type AutoSalonOffer struct {
	SpecialOffer
	AutoSalonID int64
}

// Пользователи

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

type Customer struct {
	ID           int64
	Role         Role
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Balance      decimal.Decimal
	IsActive     bool
}

// Статистика

type AutoSalonStats struct {
	Name               string
	SuppliersCount     int
	CarsCount          int
	CustomersCount     int
	Balance            decimal.Decimal
	MaxSupplierPrice   decimal.NullDecimal
	MinSupplierPrice   decimal.NullDecimal
	SaleHistoriesCount int
	MaxHistoryPrice    decimal.NullDecimal
	MinHistoryPrice    decimal.NullDecimal
}

type SupplierStats struct {
	Name               string
	Price              decimal.Decimal
	AutoSalonsCount    int
	CarsCount          int
	SaleHistoriesCount int
	MaxHistoryPrice    decimal.NullDecimal
	MinHistoryPrice    decimal.NullDecimal
}

type CustomerStats struct {
	AdminCount    int
	ManagerCount  int
	CustomerCount int
	TotalBalance  decimal.Decimal
	PerCustomer   []CustomerStatsRow
}

type CustomerStatsRow struct {
	Email           string
	Balance         decimal.Decimal
	AutoSalonsCount int
	PurchasesCount  int
}
