package specification

import (
	"strings"

	"gorm.io/gorm"
)

// joinBrandCategory attaches the lookup tables so name filters can reach
// brand and category names in one query.
func joinBrandCategory(db *gorm.DB) *gorm.DB {
	return db.
		Joins("LEFT JOIN brands ON brands.id = products.brand_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

// CategoryNamed matches products whose category name equals the term.
type CategoryNamed struct {
	Name string
}

func (s CategoryNamed) Apply(db *gorm.DB) *gorm.DB {
	return joinBrandCategory(db).
		Where("LOWER(categories.name) = ?", strings.ToLower(strings.TrimSpace(s.Name)))
}

// FirstWordPrefix matches products whose name starts with the first word
// of the search term. Unless NameOnly is set, a brand or category name
// starting with that word also matches.
type FirstWordPrefix struct {
	Term     string
	NameOnly bool
}

func (s FirstWordPrefix) Apply(db *gorm.DB) *gorm.DB {
	term := strings.ToLower(strings.TrimSpace(s.Term))
	first := term
	if fields := strings.Fields(term); len(fields) > 0 {
		first = fields[0]
	}
	pattern := first + "%"

	if s.NameOnly {
		return db.Where("LOWER(products.name) LIKE ?", pattern)
	}
	return joinBrandCategory(db).
		Where("LOWER(products.name) LIKE ? OR LOWER(brands.name) LIKE ? OR LOWER(categories.name) LIKE ?",
			pattern, pattern, pattern)
}

// NameContainsNotPrefix matches products whose name contains the whole
// term somewhere after the start. Prefix hits were already taken by
// FirstWordPrefix, excluding them keeps the two stages disjoint.
type NameContainsNotPrefix struct {
	Term string
}

func (s NameContainsNotPrefix) Apply(db *gorm.DB) *gorm.DB {
	term := strings.ToLower(strings.TrimSpace(s.Term))
	return db.
		Where("LOWER(products.name) LIKE ?", "%"+term+"%").
		Where("LOWER(products.name) NOT LIKE ?", term+"%")
}
