package analysis

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

type yearRequest struct {
	Year int `validate:"gte=1970,lte=2100"`
}

type monthRequest struct {
	Year  int `validate:"gte=1970,lte=2100"`
	Month int `validate:"gte=1,lte=12"`
}

// ValidateYear rejects years outside 1970-2100.
func ValidateYear(year int) error {
	if err := getValidator().Struct(yearRequest{Year: year}); err != nil {
		return fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	return nil
}

// ValidateMonth rejects a year outside 1970-2100 or a month outside 1-12.
func ValidateMonth(year, month int) error {
	err := getValidator().Struct(monthRequest{Year: year, Month: month})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "Year" {
				return fmt.Errorf("%w: got %d", ErrInvalidYear, year)
			}
		}
	}
	return fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
}
