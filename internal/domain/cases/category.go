package cases

// Category is read-only reference data
type Category struct {
	ID   string `json:"_id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// CategoryIndex is a collection of categories keyed by id.
// List preserves the order the backend returned.
type CategoryIndex struct {
	order []string
	byID  map[string]Category
}

// NewCategoryIndex indexes the given categories. Later duplicates replace
// earlier ones but keep the first position.
func NewCategoryIndex(categories []Category) CategoryIndex {
	idx := CategoryIndex{
		order: make([]string, 0, len(categories)),
		byID:  make(map[string]Category, len(categories)),
	}
	for _, c := range categories {
		if _, exists := idx.byID[c.ID]; !exists {
			idx.order = append(idx.order, c.ID)
		}
		idx.byID[c.ID] = c
	}
	return idx
}

// Lookup returns the category with the given id
func (idx CategoryIndex) Lookup(id string) (Category, bool) {
	c, ok := idx.byID[id]
	return c, ok
}

// Contains returns true if id is a known category
func (idx CategoryIndex) Contains(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// List returns the categories in display order
func (idx CategoryIndex) List() []Category {
	out := make([]Category, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.byID[id])
	}
	return out
}

// Len returns the number of categories
func (idx CategoryIndex) Len() int {
	return len(idx.order)
}
