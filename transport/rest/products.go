package rest

import (
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/catalog"
)

type productsResponse struct {
	Rows []catalog.Row `json:"rows"`
}

func (that *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := catalog.Query{Text: r.URL.Query().Get("filter")}

	if raw := r.URL.Query().Get("in_stock_only"); raw != "" {
		inStockOnly, err := strconv.ParseBool(raw)
		if err != nil {
			that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "in_stock_only must be a boolean"})
			return
		}
		query.InStockOnly = inStockOnly
	}

	rows := catalog.Filter(catalog.DefaultProducts(), query)
	if rows == nil {
		rows = []catalog.Row{}
	}

	that.writeJSON(w, http.StatusOK, productsResponse{Rows: rows})
}
