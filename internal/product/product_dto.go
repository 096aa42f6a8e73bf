package product

type ListQuery struct {
	Category string `form:"category"`
	Featured bool   `form:"featured"`
	InStock  bool   `form:"in_stock"`
	Search   string `form:"search"`
	Sort     string `form:"sort" binding:"omitempty,oneof=newest price-asc price-desc name-asc name-desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *ListQuery) applyDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	if q.Sort == "" {
		q.Sort = string(SortNewest)
	}
}

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	InStock     *bool    `json:"inStock"`
	IsFeatured  bool     `json:"isFeatured"`
}

func (r ProductRequest) toInput() Input {
	in := Input{
		Name:        r.Name,
		Description: r.Description,
		Category:    Category(r.Category),
		Images:      r.Images,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		InStock:     true,
		IsFeatured:  r.IsFeatured,
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.InStock != nil {
		in.InStock = *r.InStock
	}
	return in
}
