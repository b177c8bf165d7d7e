package reference

// countryAliases maps a normalized country key to the alternative names the
// reference sheets are known to use. The mapping is bidirectional: every
// informal name also maps back to its canonical forms.
var countryAliases = map[string][]string{
	"USA":            {"UNITED STATES", "US", "AMERICA"},
	"US":             {"UNITED STATES", "USA", "AMERICA"},
	"AMERICA":        {"UNITED STATES", "USA", "US"},
	"UNITED STATES":  {"USA", "US", "AMERICA"},
	"UK":             {"UNITED KINGDOM", "BRITAIN", "GREAT BRITAIN"},
	"BRITAIN":        {"UNITED KINGDOM", "UK", "GREAT BRITAIN"},
	"GREAT BRITAIN":  {"UNITED KINGDOM", "UK", "BRITAIN"},
	"UNITED KINGDOM": {"UK", "BRITAIN", "GREAT BRITAIN"},
}

// CountryAliases returns alternative lookup keys for a normalized country
// name, in the order they should be tried. Exact matches always take
// precedence over aliases; callers consult this only after an exact miss.
func CountryAliases(key string) []string {
	return countryAliases[key]
}
