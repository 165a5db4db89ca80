package service

import (
	"net/mail"
	"strings"

	"github.com/iurnickita/autosalon/internal/model"
)

func validateAutoSalon(a model.AutoSalon) error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("name is required")
	}
	if a.Balance.IsNegative() {
		return invalid("balance must not be negative")
	}
	return nil
}

func validateCar(c model.Car) error {
	if strings.TrimSpace(c.ModelName) == "" {
		return invalid("model_name is required")
	}
	return nil
}

func validateOptionCar(o model.OptionCar) error {
	if o.Year.IsZero() {
		return invalid("year is required")
	}
	if o.Mileage < 0 {
		return invalid("mileage must not be negative")
	}
	if strings.TrimSpace(o.BodyType) == "" || strings.TrimSpace(o.TransmissionType) == "" ||
		strings.TrimSpace(o.DriveUnitType) == "" || strings.TrimSpace(o.Color) == "" ||
		strings.TrimSpace(o.EngineType) == "" {
		return invalid("body_type, transmission_type, drive_unit_type, color and engine_type are required")
	}
	return nil
}

func validateSupplier(s model.Supplier) error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid("name is required")
	}
	if s.YearOfIssue.IsZero() {
		return invalid("year_of_issue is required")
	}
	if s.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	return nil
}

func validateOffer(o model.SpecialOffer, ownerID int64) error {
	if strings.TrimSpace(o.Name) == "" {
		return invalid("name is required")
	}
	if o.Discount < 0 || o.Discount > 100 {
		return invalid("discount must be between 0 and 100")
	}
	if o.StartDate.IsZero() || o.EndDate.IsZero() {
		return invalid("start_date and end_date are required")
	}
	if !o.EndDate.After(o.StartDate) {
		return invalid("end_date must be after start_date")
	}
	if ownerID <= 0 {
		return invalid("owner id is required")
	}
	return nil
}

func validateCustomer(c model.Customer) error {
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return invalid("first_name and last_name are required")
	}
	if !c.Role.Valid() {
		return invalid("unknown role %q", c.Role)
	}
	if c.Balance.IsNegative() {
		return invalid("balance must not be negative")
	}
	return nil
}

// ValidateEmail accepts a bare address only, without a display name.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("invalid email %q", email)
	}
	return nil
}
