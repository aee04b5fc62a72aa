package catalog

import "strings"

const (
	RowCategory = "category"
	RowProduct  = "product"
)

type Product struct {
	Category string `json:"category"`
	Price    string `json:"price"`
	Stocked  bool   `json:"stocked"`
	Name     string `json:"name"`
}

// Query narrows the listing. An empty Text matches every name.
type Query struct {
	Text        string
	InStockOnly bool
}

// Row is one line of the product table: either a category heading or a product.
type Row struct {
	Kind     string   `json:"kind"`
	Category string   `json:"category"`
	Product  *Product `json:"product,omitempty"`
}

func DefaultProducts() []Product {
	return []Product{
		{Category: "Fruits", Price: "$1", Stocked: true, Name: "Apple"},
		{Category: "Fruits", Price: "$1", Stocked: true, Name: "Dragonfruit"},
		{Category: "Fruits", Price: "$2", Stocked: false, Name: "Passionfruit"},
		{Category: "Vegetables", Price: "$2", Stocked: true, Name: "Spinach"},
		{Category: "Vegetables", Price: "$4", Stocked: false, Name: "Pumpkin"},
		{Category: "Vegetables", Price: "$1", Stocked: true, Name: "Peas"},
	}
}

// Filter keeps the input order and emits a category row whenever the category of the
// kept products changes.
func Filter(products []Product, query Query) []Row {
	text := strings.ToLower(query.Text)

	var (
		rows         []Row
		lastCategory string
	)
	for i := range products {
		product := products[i]

		if !strings.Contains(strings.ToLower(product.Name), text) {
			continue
		}
		if query.InStockOnly && !product.Stocked {
			continue
		}

		if len(rows) == 0 || product.Category != lastCategory {
			rows = append(rows, Row{Kind: RowCategory, Category: product.Category})
		}

		rows = append(rows, Row{Kind: RowProduct, Category: product.Category, Product: &product})
		lastCategory = product.Category
	}

	return rows
}
