package marketdata

import "strings"

// indexCountries maps well-known market index symbols to their home country,
// used to auto-select the equity-risk-premium row.
var indexCountries = map[string]string{
	"^GSPC":      "United States",
	"^DJI":       "United States",
	"^IXIC":      "United States",
	"^GDAXI":     "Germany",
	"^FCHI":      "France",
	"FTSEMIB.MI": "Italy",
	"^FTSE":      "United Kingdom",
	"^AEX":       "Netherlands",
	"^SSMI":      "Switzerland",
	"^IBEX":      "Spain",
	"^N225":      "Japan",
	"^AORD":      "Australia",
	"^GSPTSE":    "Canada",
	"^BVSP":      "Brazil",
	"^MXX":       "Mexico",
}

// exchangeSuffixes maps listing suffixes to countries for symbols that are
// not in the direct index table.
var exchangeSuffixes = map[string]string{
	".MI": "Italy",
	".DE": "Germany",
	".PA": "France",
	".L":  "United Kingdom",
	".AS": "Netherlands",
	".SW": "Switzerland",
	".TO": "Canada",
	".AX": "Australia",
}

// DetectCountry guesses the country behind an index symbol. Direct mapping
// first, listing-suffix pattern second; empty string when neither applies.
func DetectCountry(indexSymbol string) string {
	upper := strings.ToUpper(strings.TrimSpace(indexSymbol))
	if country, ok := indexCountries[upper]; ok {
		return country
	}
	for suffix, country := range exchangeSuffixes {
		if strings.HasSuffix(upper, strings.ToUpper(suffix)) {
			return country
		}
	}
	return ""
}
