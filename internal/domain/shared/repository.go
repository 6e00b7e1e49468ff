package shared

// Filter carries list-query options from the application layer down to a
// repository: pagination, ordering, a free-text search term, and exact
// field matches (e.g. status or assigned_to on case listings). Order
// fields are validated against a whitelist at the persistence layer
// before they reach SQL.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}
