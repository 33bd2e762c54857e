package classify

import (
	"path/filepath"
	"strings"
)

// Classification is the result of classifying a single filename.
type Classification struct {
	Category    string
	Subcategory string
}

// Display returns "category" or "category/subcategory" for grouping and
// preview output.
func (c Classification) Display() string {
	if c.Subcategory == "" {
		return c.Category
	}
	return c.Category + "/" + c.Subcategory
}

// Classify maps a filename to its category and optional subcategory. The
// extension lookup is case-insensitive; a missing or unknown extension yields
// the fallback category. Subcategories apply only when the category carries
// keyword rules and the lowercased filename contains one of the keywords; the
// first rule in declaration order wins.
func (r *Ruleset) Classify(filename string) Classification {
	category := r.fallback
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if name, ok := r.extensions[ext]; ok {
			category = name
		}
	}
	result := Classification{Category: category}
	rules, ok := r.keywords[category]
	if !ok {
		return result
	}
	lower := strings.ToLower(filename)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				result.Subcategory = rule.Subcategory
				return result
			}
		}
	}
	return result
}
