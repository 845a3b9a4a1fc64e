package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStringRange checks that a string length falls inside [min, max]
func ValidateStringRange(s string, min, max int) error {
	if err := validate.Var(s, fmt.Sprintf("min=%d,max=%d", min, max)); err != nil {
		return fmt.Errorf("string length must be between %d and %d", min, max)
	}
	return nil
}

// ValidateDocumentNumber checks an identity document number against its
// type: DNI numbers are exactly 8 digits, RUC numbers exactly 11 digits.
// Other document types are only length-checked.
func ValidateDocumentNumber(documentType, number string) error {
	switch documentType {
	case "dni":
		if err := validate.Var(number, "numeric,len=8"); err != nil {
			return fmt.Errorf("dni must be exactly 8 digits")
		}
	case "ruc":
		if err := validate.Var(number, "numeric,len=11"); err != nil {
			return fmt.Errorf("ruc must be exactly 11 digits")
		}
	default:
		return ValidateStringRange(number, 8, 30)
	}
	return nil
}

// ValidateHexColor checks a display color. Empty is allowed so the column
// default applies.
func ValidateHexColor(color string) error {
	if color == "" {
		return nil
	}
	if err := validate.Var(color, "hexcolor"); err != nil {
		return fmt.Errorf("color must be a hex value like #336699")
	}
	return nil
}
