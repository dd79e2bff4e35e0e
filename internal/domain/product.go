package domain

// Product represents a single skincare product in the catalog
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
	Conditions  []string `json:"conditions"`
	Price       float64  `json:"price"`
}

// AddProductRequest represents a request to append a product to the catalog
type AddProductRequest struct {
	Name        string   `json:"name" binding:"required" validate:"required"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
	Conditions  []string `json:"conditions"`
	Price       float64  `json:"price" validate:"gte=0"`
}

// FeatureMatrix is the numeric encoding of every catalog product.
// Rows are in catalog order; Columns are ingredient, condition and category
// indicators (each group sorted) followed by the standardized price.
type FeatureMatrix struct {
	Columns    []string    `json:"columns"`
	Rows       [][]float64 `json:"rows"`
	ProductIDs []int       `json:"productIds"`
	PriceMean  float64     `json:"priceMean"`
	PriceScale float64     `json:"priceScale"`
}

// Feature column prefixes
const (
	IngredientColumnPrefix = "ingredient:"
	ConditionColumnPrefix  = "condition:"
	CategoryColumnPrefix   = "category:"
	PriceColumn            = "price"
)
