package usecase

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/skinmatch/backend/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// structValidator returns the shared validator instance; it caches struct metadata
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// validateAddProduct checks an add request and maps failures onto domain errors
func validateAddProduct(req *domain.AddProductRequest) error {
	if req == nil {
		return domain.ErrInvalidRequest
	}

	if strings.TrimSpace(req.Name) == "" {
		return domain.ErrEmptyName
	}
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return domain.ErrInvalidPrice
	}

	if err := structValidator().Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
		}

		fe := fieldErrs[0]
		switch fe.Field() {
		case "Name":
			return domain.ErrEmptyName
		case "Price":
			return domain.ErrInvalidPrice
		default:
			return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidRequest, strings.ToLower(fe.Field()), fe.Tag())
		}
	}

	return nil
}

// validateRecommendRequest checks a recommendation query. A whitespace-only
// condition counts as missing, the same rule applied to product names.
func validateRecommendRequest(req *domain.RecommendRequest) error {
	if req == nil || strings.TrimSpace(req.Condition) == "" {
		return domain.ErrEmptyCondition
	}
	if req.MaxPrice != nil && (math.IsNaN(*req.MaxPrice) || math.IsInf(*req.MaxPrice, 0)) {
		return fmt.Errorf("%w: max price must be a finite number", domain.ErrInvalidRequest)
	}
	return nil
}
