// Package classify matches transaction text against the category
// taxonomy.
//
// Classification only runs before a transaction is created. Aggregation
// never consults the taxonomy, it treats categories as opaque strings.
package classify

import (
	"strings"

	"github.com/pocketledger/backend/internal/models"
	"github.com/ryanuber/go-glob"
)

// Classify returns the name of the first active category with a keyword
// matching the merchant or description.
//
// Keywords are matched case-insensitively. A keyword containing "*" is
// used as a glob pattern, any other keyword matches as a substring.
// Categories are checked in the order given, so callers wanting
// deterministic results pass them sorted.
func Classify(categories []models.Category, merchant, description string) (string, bool) {
	merchant = strings.ToLower(merchant)
	description = strings.ToLower(description)

	for _, category := range categories {
		if !category.Active {
			continue
		}

		for _, keyword := range category.Keywords {
			keyword = strings.ToLower(keyword)
			if keyword == "" {
				continue
			}

			if !strings.Contains(keyword, glob.GLOB) {
				keyword = glob.GLOB + keyword + glob.GLOB
			}

			if glob.Glob(keyword, merchant) || glob.Glob(keyword, description) {
				return category.Name, true
			}
		}
	}

	return "", false
}
