package repositories

import (
	"strings"

	"carmarket/internal/models"
)

// listingConditions translates a filter into conjunctive WHERE clauses and
// their bind parameters. All dimensions are optional.
func listingConditions(f models.ListingFilter) ([]string, []interface{}) {
	var (
		conds  []string
		params []interface{}
	)

	if f.Brand != "" {
		conds = append(conds, "brand = ?")
		params = append(params, f.Brand)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		params = append(params, f.Category)
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= ?")
		params = append(params, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		params = append(params, *f.MaxPrice)
	}
	if f.MinYear != nil {
		conds = append(conds, "year >= ?")
		params = append(params, *f.MinYear)
	}
	if f.MaxYear != nil {
		conds = append(conds, "year <= ?")
		params = append(params, *f.MaxYear)
	}
	return conds, params
}

// listingOrder maps a sort key to its ORDER BY clause. The id tiebreaker
// keeps pagination stable when rows share the primary sort value. Unknown
// keys sort newest first.
func listingOrder(sort string) string {
	switch sort {
	case models.SortOldest:
		return " ORDER BY created_at ASC, id ASC"
	case models.SortPriceLow:
		return " ORDER BY price ASC, id ASC"
	case models.SortPriceHigh:
		return " ORDER BY price DESC, id ASC"
	case models.SortYearNew:
		return " ORDER BY year DESC, id ASC"
	case models.SortYearOld:
		return " ORDER BY year ASC, id ASC"
	default:
		return " ORDER BY created_at DESC, id ASC"
	}
}

// buildListingPageQuery assembles the paged select and the matching exact
// count query for one page request.
func buildListingPageQuery(req models.ListingPageRequest) (listQuery, countQuery string, listParams, countParams []interface{}) {
	conds, params := listingConditions(req.Filter)

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery = "SELECT COUNT(*) FROM car_listings" + where
	countParams = params

	listQuery = `
		SELECT id, user_id, brand, model, year, price, mileage, fuel_type, transmission,
		       category, color, description, images, location, created_at, updated_at
		FROM car_listings` + where + listingOrder(req.Sort) + " LIMIT ? OFFSET ?"

	offset := (req.Page - 1) * req.PageSize
	listParams = append(append([]interface{}{}, params...), req.PageSize, offset)
	return listQuery, countQuery, listParams, countParams
}
