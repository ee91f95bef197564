package services

import "strings"

// categorySynonyms maps everyday shopping vocabulary to catalog category
// names. Longer synonyms are matched first so "mobile phone" does not
// resolve through "phone" alone.
var categorySynonyms = map[string]string{
	"mobile phone":  "Smartphones",
	"mobile phones": "Smartphones",
	"phone":         "Smartphones",
	"phones":        "Smartphones",
	"mobile":        "Smartphones",
	"mobiles":       "Smartphones",
	"smartphone":    "Smartphones",
	"smartphones":   "Smartphones",
	"cellphone":     "Smartphones",

	"laptop":    "Laptops",
	"laptops":   "Laptops",
	"computer":  "Laptops",
	"computers": "Laptops",
	"notebook":  "Laptops",
	"notebooks": "Laptops",

	"headphone":  "Headphones",
	"headphones": "Headphones",
	"earphone":   "Headphones",
	"earphones":  "Headphones",
	"earbud":     "Headphones",
	"earbuds":    "Headphones",

	"tablet":  "Tablets",
	"tablets": "Tablets",
	"ipad":    "Tablets",

	"watch":        "Smartwatches",
	"watches":      "Smartwatches",
	"smartwatch":   "Smartwatches",
	"smartwatches": "Smartwatches",

	"speaker":  "Speakers",
	"speakers": "Speakers",

	"camera":  "Cameras",
	"cameras": "Cameras",

	"gaming console": "Gaming Consoles",
	"console":        "Gaming Consoles",
	"consoles":       "Gaming Consoles",
}

// MapCategory resolves the first category synonym found in the query.
// Returns the empty string when nothing maps.
func MapCategory(query string) string {
	lower := strings.ToLower(query)

	best := ""
	bestLen := 0
	for synonym, category := range categorySynonyms {
		if strings.Contains(lower, synonym) && len(synonym) > bestLen {
			best = category
			bestLen = len(synonym)
		}
	}
	return best
}
