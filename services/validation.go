package services

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

func itemTypeValues() []any {
	values := make([]any, 0, len(StandardItemTypes)+1)
	for _, t := range StandardItemTypes {
		values = append(values, t)
	}
	return append(values, ItemCustom)
}

func standardItemTypeValues() []any {
	values := make([]any, 0, len(StandardItemTypes))
	for _, t := range StandardItemTypes {
		values = append(values, t)
	}
	return values
}

// ItemInput is a raw "add item" request.
type ItemInput struct {
	Type        ItemType
	CustomName  string
	CustomPrice string
}

// Parse validates the input and returns the normalized name and price.
// Custom items need a non-blank name and a price above zero.
func (in ItemInput) Parse() (name string, price float64, err error) {
	name = strings.TrimSpace(in.CustomName)
	if err := validation.Validate(in.Type, validation.Required, validation.In(itemTypeValues()...)); err != nil {
		return "", 0, validation.Errors{"type": err}
	}
	if in.Type != ItemCustom {
		return "", 0, nil
	}

	price, convErr := cast.ToFloat64E(strings.TrimSpace(in.CustomPrice))
	errs := validation.Errors{
		"custom_name": validation.Validate(name, validation.Required, validation.Length(1, 120)),
	}
	if convErr != nil {
		errs["custom_price"] = validation.NewError("validation_not_numeric", "must be a number")
	} else {
		errs["custom_price"] = validation.Validate(price, validation.Required, validation.Min(0.0).Exclusive())
	}
	if err := errs.Filter(); err != nil {
		return "", 0, err
	}
	return name, price, nil
}

// ParsePrice validates a catalog price update for a standard item type.
func ParsePrice(itemType ItemType, raw string) (float64, error) {
	if err := validation.Validate(itemType, validation.Required, validation.In(standardItemTypeValues()...)); err != nil {
		return 0, validation.Errors{"type": err}
	}

	price, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil || strings.TrimSpace(raw) == "" {
		return 0, validation.Errors{"price": validation.NewError("validation_not_numeric", "must be a number")}
	}
	if err := validation.Validate(price, validation.Min(0.0)); err != nil {
		return 0, validation.Errors{"price": err}
	}
	return price, nil
}

// ValidateConstructionType accepts only the two known site conditions.
func ValidateConstructionType(c ConstructionType) error {
	return validation.Validate(c, validation.Required, validation.In(ConstructionGroundUp, ConstructionExisting))
}

// ValidatePIN checks the PIN shape before it is compared.
func ValidatePIN(pin string) error {
	return validation.Validate(pin, validation.Required, validation.Match(pinPattern))
}
