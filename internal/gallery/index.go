package gallery

import (
	"strings"

	"golang.org/x/text/cases"
)

// AllCategories is the wildcard filter that keeps every catalogued item.
const AllCategories = "all"

// BuildIndex projects catalogued items onto descriptors, preserving order.
func BuildIndex(items []Item) []Descriptor {
	if len(items) == 0 {
		return nil
	}
	out := make([]Descriptor, len(items))
	for i, it := range items {
		out[i] = it.Descriptor()
	}
	return out
}

// FilterIndex returns the descriptors of items in category, in catalogue order.
func FilterIndex(items []Item, category string) []Descriptor {
	if IsWildcard(category) {
		return BuildIndex(items)
	}
	want := foldCategory(category)
	var out []Descriptor
	for _, it := range items {
		if foldCategory(it.Category) == want {
			out = append(out, it.Descriptor())
		}
	}
	return out
}

// Refilter recomputes the index for category. The cursor always returns to 0.
func Refilter(s State, items []Item, category string) State {
	return s.WithItems(FilterIndex(items, category))
}

// IsWildcard reports whether category selects every item.
func IsWildcard(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || foldCategory(category) == AllCategories
}

// Categories lists AllCategories followed by each distinct category in order of
// first appearance. Items without a category only appear under the wildcard.
func Categories(items []Item) []string {
	out := []string{AllCategories}
	seen := map[string]bool{AllCategories: true}
	for _, it := range items {
		name := strings.TrimSpace(it.Category)
		if name == "" {
			continue
		}
		key := foldCategory(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func foldCategory(category string) string {
	// Casers carry state, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(category))
}
