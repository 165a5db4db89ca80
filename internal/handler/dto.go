package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iurnickita/autosalon/internal/deal"
	"github.com/iurnickita/autosalon/internal/model"
)

// Деньги в JSON - строки с десятичной дробью (decimal.Decimal так и сериализуется)

const dateLayout = "2006-01-02"

// Date - дата без времени, "2006-01-02"
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

func ids(list []int64) []int64 {
	if list == nil {
		return []int64{}
	}
	return list
}

type AutoSalonJSON struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	Suppliers []int64         `json:"suppliers"`
	Customers []int64         `json:"customers"`
	Cars      []int64         `json:"cars"`
}

func newAutoSalonJSON(a model.AutoSalon) AutoSalonJSON {
	return AutoSalonJSON{
		ID:        a.ID,
		Name:      a.Name,
		Location:  a.Location,
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		Suppliers: ids(a.SupplierIDs),
		Customers: ids(a.CustomerIDs),
		Cars:      ids(a.CarIDs),
	}
}

func (j AutoSalonJSON) model() model.AutoSalon {
	return model.AutoSalon{
		ID:          j.ID,
		Name:        j.Name,
		Location:    j.Location,
		Balance:     j.Balance,
		IsActive:    j.IsActive,
		SupplierIDs: j.Suppliers,
		CustomerIDs: j.Customers,
		CarIDs:      j.Cars,
	}
}

// AutoSalonUpdateJSONRequest - тело PUT. Баланс меняют только сделки, поэтому его здесь нет
type AutoSalonUpdateJSONRequest struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	IsActive  bool    `json:"is_active"`
	Suppliers []int64 `json:"suppliers"`
	Customers []int64 `json:"customers"`
	Cars      []int64 `json:"cars"`
}

func (j AutoSalonUpdateJSONRequest) model(id int64) model.AutoSalon {
	return model.AutoSalon{
		ID:          id,
		Name:        j.Name,
		Location:    j.Location,
		IsActive:    j.IsActive,
		SupplierIDs: j.Suppliers,
		CustomerIDs: j.Customers,
		CarIDs:      j.Cars,
	}
}

type CarJSON struct {
	ID         int64   `json:"id"`
	ModelName  string  `json:"model_name"`
	IsActive   bool    `json:"is_active"`
	AutoSalons []int64 `json:"autosalons"`
	Options    []int64 `json:"options"`
}

func newCarJSON(c model.Car) CarJSON {
	return CarJSON{
		ID:         c.ID,
		ModelName:  c.ModelName,
		IsActive:   c.IsActive,
		AutoSalons: ids(c.AutoSalonIDs),
		Options:    ids(c.OptionIDs),
	}
}

func (j CarJSON) model() model.Car {
	return model.Car{
		ID:           j.ID,
		ModelName:    j.ModelName,
		IsActive:     j.IsActive,
		AutoSalonIDs: j.AutoSalons,
		OptionIDs:    j.Options,
	}
}

type OptionCarJSON struct {
	ID               int64  `json:"id"`
	Year             Date   `json:"year"`
	Mileage          int    `json:"mileage"`
	BodyType         string `json:"body_type"`
	TransmissionType string `json:"transmission_type"`
	DriveUnitType    string `json:"drive_unit_type"`
	Color            string `json:"color"`
	EngineType       string `json:"engine_type"`
	IsActive         bool   `json:"is_active"`
}

func newOptionCarJSON(o model.OptionCar) OptionCarJSON {
	return OptionCarJSON{
		ID:               o.ID,
		Year:             Date(o.Year),
		Mileage:          o.Mileage,
		BodyType:         o.BodyType,
		TransmissionType: o.TransmissionType,
		DriveUnitType:    o.DriveUnitType,
		Color:            o.Color,
		EngineType:       o.EngineType,
		IsActive:         o.IsActive,
	}
}

func (j OptionCarJSON) model() model.OptionCar {
	return model.OptionCar{
		ID:               j.ID,
		Year:             time.Time(j.Year),
		Mileage:          j.Mileage,
		BodyType:         j.BodyType,
		TransmissionType: j.TransmissionType,
		DriveUnitType:    j.DriveUnitType,
		Color:            j.Color,
		EngineType:       j.EngineType,
		IsActive:         j.IsActive,
	}
}

type SupplierJSON struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	YearOfIssue Date            `json:"year_of_issue"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	Cars        []int64         `json:"cars"`
}

func newSupplierJSON(s model.Supplier) SupplierJSON {
	return SupplierJSON{
		ID:          s.ID,
		Name:        s.Name,
		YearOfIssue: Date(s.YearOfIssue),
		Price:       s.Price,
		IsActive:    s.IsActive,
		Cars:        ids(s.CarIDs),
	}
}

func (j SupplierJSON) model() model.Supplier {
	return model.Supplier{
		ID:          j.ID,
		Name:        j.Name,
		YearOfIssue: time.Time(j.YearOfIssue),
		Price:       j.Price,
		IsActive:    j.IsActive,
		CarIDs:      j.Cars,
	}
}

type OfferJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Descr     string    `json:"descr"`
	Discount  int       `json:"discount"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
}

func newOfferJSON(o model.SpecialOffer) OfferJSON {
	return OfferJSON{
		ID:        o.ID,
		Name:      o.Name,
		Descr:     o.Descr,
		Discount:  o.Discount,
		StartDate: o.StartDate,
		EndDate:   o.EndDate,
		IsActive:  o.IsActive,
	}
}

func (j OfferJSON) model() model.SpecialOffer {
	return model.SpecialOffer{
		ID:        j.ID,
		Name:      j.Name,
		Descr:     j.Descr,
		Discount:  j.Discount,
		StartDate: j.StartDate,
		EndDate:   j.EndDate,
		IsActive:  j.IsActive,
	}
}

type SupplierOfferJSON struct {
	OfferJSON
	Supplier int64 `json:"supplier"`
}

func newSupplierOfferJSON(o model.SupplierOffer) SupplierOfferJSON {
	return SupplierOfferJSON{OfferJSON: newOfferJSON(o.SpecialOffer), Supplier: o.SupplierID}
}

func (j SupplierOfferJSON) model() model.SupplierOffer {
	return model.SupplierOffer{SpecialOffer: j.OfferJSON.model(), SupplierID: j.Supplier}
}

type AutoSalonOfferJSON struct {
	OfferJSON
	AutoSalon int64 `json:"autosalon"`
}

func newAutoSalonOfferJSON(o model.AutoSalonOffer) AutoSalonOfferJSON {
	return AutoSalonOfferJSON{OfferJSON: newOfferJSON(o.SpecialOffer), AutoSalon: o.AutoSalonID}
}

func (j AutoSalonOfferJSON) model() model.AutoSalonOffer {
	return model.AutoSalonOffer{SpecialOffer: j.OfferJSON.model(), AutoSalonID: j.AutoSalon}
}

// CustomerJSON не содержит пароля. Пароль задается только при регистрации
type CustomerJSON struct {
	ID        int64           `json:"id"`
	Role      model.Role      `json:"role"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
}

func newCustomerJSON(c model.Customer) CustomerJSON {
	return CustomerJSON{
		ID:        c.ID,
		Role:      c.Role,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Balance:   c.Balance,
		IsActive:  c.IsActive,
	}
}

// CustomerUpdateJSONRequest - тело PUT, без баланса и пароля
type CustomerUpdateJSONRequest struct {
	Role      model.Role `json:"role"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
}

func (j CustomerUpdateJSONRequest) model(id int64) model.Customer {
	return model.Customer{
		ID:        id,
		Role:      j.Role,
		FirstName: j.FirstName,
		LastName:  j.LastName,
		Email:     j.Email,
		IsActive:  j.IsActive,
	}
}

type SaleHistoryJSON struct {
	ID        int64           `json:"id"`
	AutoSalon int64           `json:"autosalon"`
	Supplier  int64           `json:"supplier"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func newSaleHistoryJSON(h model.SaleHistory) SaleHistoryJSON {
	return SaleHistoryJSON{
		ID:        h.ID,
		AutoSalon: h.AutoSalonID,
		Supplier:  h.SupplierID,
		Price:     h.Price,
		CreatedAt: h.CreatedAt,
	}
}

type CustomerSaleHistoryJSON struct {
	ID       int64           `json:"id"`
	Customer int64           `json:"customer"`
	Car      int64           `json:"car"`
	Price    decimal.Decimal `json:"price"`
	Date     time.Time       `json:"date"`
}

func newCustomerSaleHistoryJSON(h model.CustomerSaleHistory) CustomerSaleHistoryJSON {
	return CustomerSaleHistoryJSON{
		ID:       h.ID,
		Customer: h.CustomerID,
		Car:      h.CarID,
		Price:    h.Price,
		Date:     h.Date,
	}
}

// Сделки

type AutoSalonSupplierDealJSONRequest struct {
	AutoSalonID int64 `json:"autosalon_id"`
	SupplierID  int64 `json:"supplier_id"`
}

type CustomerAutoSalonDealJSONRequest struct {
	AutoSalonID int64           `json:"autosalon_id"`
	CustomerID  int64           `json:"customer_id"`
	Price       decimal.Decimal `json:"price"`
	CarID       int64           `json:"car_id,omitempty"`
	CarModel    string          `json:"car_model,omitempty"`
}

func (j CustomerAutoSalonDealJSONRequest) deal() deal.CustomerDeal {
	return deal.CustomerDeal{
		AutoSalonID: j.AutoSalonID,
		CustomerID:  j.CustomerID,
		Price:       j.Price,
		CarID:       j.CarID,
		CarModel:    j.CarModel,
	}
}

type RecheckJSONRequest struct {
	AutoSalonID int64 `json:"autosalon_id"`
}

type RecheckJSONResponse struct {
	AutoSalonID int64   `json:"autosalon_id"`
	Kept        []int64 `json:"kept"`
	Removed     []int64 `json:"removed"`
}

func newRecheckJSON(r deal.RecheckReport) RecheckJSONResponse {
	return RecheckJSONResponse{
		AutoSalonID: r.AutoSalonID,
		Kept:        ids(r.Kept),
		Removed:     ids(r.Removed),
	}
}

// Статистика

type AutoSalonStatsJSON struct {
	Name               string              `json:"name"`
	SuppliersCount     int                 `json:"suppliers_count"`
	CarsCount          int                 `json:"cars_count"`
	CustomersCount     int                 `json:"customers_count"`
	Balance            decimal.Decimal     `json:"balance"`
	MaxSupplierPrice   decimal.NullDecimal `json:"max_supplier_price"`
	MinSupplierPrice   decimal.NullDecimal `json:"min_supplier_price"`
	SaleHistoriesCount int                 `json:"sale_histories_count"`
	MaxHistoryPrice    decimal.NullDecimal `json:"max_sale_history_price"`
	MinHistoryPrice    decimal.NullDecimal `json:"min_sale_history_price"`
}

type SupplierStatsJSON struct {
	Name               string              `json:"name"`
	Price              decimal.Decimal     `json:"price"`
	AutoSalonsCount    int                 `json:"autosalons_count"`
	CarsCount          int                 `json:"cars_count"`
	SaleHistoriesCount int                 `json:"sale_histories_count"`
	MaxHistoryPrice    decimal.NullDecimal `json:"max_sale_history_price"`
	MinHistoryPrice    decimal.NullDecimal `json:"min_sale_history_price"`
}

type CustomerStatsJSON struct {
	AdminCount    int                    `json:"admin_count"`
	ManagerCount  int                    `json:"manager_count"`
	CustomerCount int                    `json:"customer_count"`
	TotalBalance  decimal.Decimal        `json:"total_balance"`
	Customers     []CustomerStatsRowJSON `json:"customers"`
}

type CustomerStatsRowJSON struct {
	Email           string          `json:"email"`
	Balance         decimal.Decimal `json:"balance"`
	AutoSalonsCount int             `json:"autosalons_count"`
	PurchasesCount  int             `json:"purchases_count"`
}
