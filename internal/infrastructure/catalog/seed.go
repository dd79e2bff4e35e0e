package catalog

import "github.com/skinmatch/backend/internal/domain"

// SeedProducts returns the fixed reference catalog loaded at construction.
// Ids run 1..10 in this order.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Gentle Cleanser",
			Category:    "cleanser",
			Ingredients: []string{"glycerin", "aloe", "chamomile"},
			Conditions:  []string{"eczema", "sensitive skin", "dryness"},
			Price:       15,
		},
		{
			ID:          2,
			Name:        "Hydrating Moisturizer",
			Category:    "moisturizer",
			Ingredients: []string{"hyaluronic acid", "ceramides", "glycerin"},
			Conditions:  []string{"dryness", "sensitive skin"},
			Price:       25,
		},
		{
			ID:          3,
			Name:        "Cortisone Cream",
			Category:    "medication",
			Ingredients: []string{"hydrocortisone", "aloe"},
			Conditions:  []string{"eczema", "dermatitis", "rash"},
			Price:       12,
		},
		{
			ID:          4,
			Name:        "Anti-fungal Cream",
			Category:    "medication",
			Ingredients: []string{"miconazole", "zinc oxide"},
			Conditions:  []string{"ringworm", "fungal infection"},
			Price:       14,
		},
		{
			ID:          5,
			Name:        "Salicylic Acid Treatment",
			Category:    "treatment",
			Ingredients: []string{"salicylic acid", "tea tree"},
			Conditions:  []string{"acne", "blackheads"},
			Price:       18,
		},
		{
			ID:          6,
			Name:        "Aloe Vera Gel",
			Category:    "treatment",
			Ingredients: []string{"aloe vera", "vitamin e"},
			Conditions:  []string{"sunburn", "irritation", "rash"},
			Price:       10,
		},
		{
			ID:          7,
			Name:        "Zinc Oxide Cream",
			Category:    "treatment",
			Ingredients: []string{"zinc oxide", "titanium dioxide"},
			Conditions:  []string{"rash", "irritation"},
			Price:       16,
		},
		{
			ID:          8,
			Name:        "Tea Tree Oil",
			Category:    "treatment",
			Ingredients: []string{"tea tree oil", "witch hazel"},
			Conditions:  []string{"acne", "fungal infection"},
			Price:       20,
		},
		{
			ID:          9,
			Name:        "Hyaluronic Acid Serum",
			Category:    "serum",
			Ingredients: []string{"hyaluronic acid", "vitamin b5"},
			Conditions:  []string{"dryness", "aging"},
			Price:       30,
		},
		{
			ID:          10,
			Name:        "Niacinamide Solution",
			Category:    "serum",
			Ingredients: []string{"niacinamide", "zinc"},
			Conditions:  []string{"acne", "large pores"},
			Price:       22,
		},
	}
}
