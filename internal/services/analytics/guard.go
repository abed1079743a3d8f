package analytics

import (
	"fmt"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
)

// guard runs fn and turns a returned error or a panic into a diagnostic.
func guard(component, rule string, fn func() error) (diag *models.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diag = &models.Diagnostic{Component: component, Rule: rule, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &models.Diagnostic{Component: component, Rule: rule, Message: err.Error()}
	}
	return nil
}
