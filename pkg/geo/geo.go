// Package geo holds the countries the explorer offers on its world map.
package geo

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var supported = []string{
	"US", "GB", "DE", "FR", "IT", "ES", "CA", "AU", "JP", "KR",
	"IN", "BR", "MX", "RU", "CN", "NL", "SE", "NO", "DK", "FI",
}

var regionNamer = display.English.Regions()

// Countries returns the supported countries in display order.
func Countries() []Country {
	out := make([]Country, 0, len(supported))
	for _, code := range supported {
		out = append(out, Country{Code: code, Name: Name(code)})
	}
	return out
}

// Name returns the English display name for an ISO-2 code, or the code
// itself when it is not a known region.
func Name(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := regionNamer.Name(region); name != "" {
		return name
	}
	return code
}

// Valid reports whether code is a two letter ISO 3166-1 country code.
func Valid(code string) bool {
	if len(code) != 2 {
		return false
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return false
	}
	return region.IsCountry()
}
