package domain

// ValidationResult reports field-level problems without raising an error.
type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

func newValidationResult(errs []string) ValidationResult {
	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
