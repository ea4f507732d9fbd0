package analysis

import "errors"

var (
	ErrInvalidYear        = errors.New("year must be between 1970 and 2100")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrInvalidGranularity = errors.New("granularity must be one of day, week, month, year")
	ErrInvalidTimezone    = errors.New("unknown timezone")
)
