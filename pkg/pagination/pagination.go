package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 25
	// MaxPerPage caps how many rows any listing query can request.
	MaxPerPage = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Normalize enforces the configured defaults and maximum page size.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Page is the envelope returned by every paginated listing.
type Page struct {
	Results      any   `json:"results"`
	Page         int   `json:"page"`
	PerPage      int   `json:"per_page"`
	TotalEntries int64 `json:"total_entries"`
	TotalPages   int   `json:"total_pages"`
}

// NewPage assembles the envelope for the given results and total row count.
func NewPage(results any, params Params, total int64) *Page {
	n := params.Normalize()
	pages := int(total) / n.PerPage
	if int(total)%n.PerPage != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return &Page{
		Results:      results,
		Page:         n.Page,
		PerPage:      n.PerPage,
		TotalEntries: total,
		TotalPages:   pages,
	}
}
