package validation

import (
	"fmt"
	"strings"

	"github.com/invtrack/investment-tracker/internal/api/request"
)

// ValidInvestmentType contains the allowed investment type values.
var ValidInvestmentType = map[string]bool{
	"stock": true, "bond": true, "fund": true, "cash": true, "other": true,
}

// ValidateCreateInvestment validates an investment creation request.
//
// Required fields:
//   - type: Must be one of: stock, bond, fund, cash, other
//   - name: Must be non-empty
//   - current_price: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	validateInvestmentType(errors, req.Type)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.CurrentPrice < 0.0 {
		errors["currentPrice"] = "current_price cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateInvestment validates an investment update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateInvestment(req request.UpdateInvestmentRequest) error {
	errors := make(map[string]string)

	if req.Type != nil {
		validateInvestmentType(errors, *req.Type)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.CurrentPrice != nil && *req.CurrentPrice < 0.0 {
		errors["currentPrice"] = "current_price cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateInvestmentType(errors map[string]string, investmentType string) {
	if strings.TrimSpace(investmentType) == "" {
		errors["investmentType"] = "type is required"
	} else if !ValidInvestmentType[investmentType] {
		errors["investmentType"] = fmt.Sprintf("invalid type: %s", investmentType)
	}
}
