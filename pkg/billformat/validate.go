package billformat

import "fmt"

// Validate validates a BillSummary structure. Rendering trusts its input
// beyond these checks; in particular amount == quantity * rate is assumed
// from the caller and not re-validated here.
func Validate(s *BillSummary) error {
	if s.BillNumber == "" {
		return fmt.Errorf("bill_number is required")
	}
	if s.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if s.BusinessName == "" {
		return fmt.Errorf("business_name is required")
	}

	for i, item := range s.Items {
		if item.Name == "" {
			return fmt.Errorf("items[%d]: name is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d] '%s': quantity must be positive", i, item.Name)
		}
		if item.Rate < 0 {
			return fmt.Errorf("items[%d] '%s': rate must not be negative", i, item.Name)
		}
		if item.Amount < 0 {
			return fmt.Errorf("items[%d] '%s': amount must not be negative", i, item.Name)
		}
	}

	if s.Subtotal < 0 {
		return fmt.Errorf("subtotal must not be negative")
	}
	if s.GrandTotal < 0 {
		return fmt.Errorf("grand_total must not be negative")
	}

	if err := validateOptionalCharge("discount", s.Discount); err != nil {
		return err
	}
	if err := validateOptionalCharge("delivery_charge", s.DeliveryCharge); err != nil {
		return err
	}
	if err := validateOptionalCharge("previous_balance", s.PreviousBalance); err != nil {
		return err
	}

	return nil
}

func validateOptionalCharge(name string, v *float64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%s must not be negative", name)
	}
	return nil
}
