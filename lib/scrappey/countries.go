package scrappey

import "strings"

// the vendor wants full country names ("UnitedStates") in proxyCountry
// while the ScrapFly vocabulary uses 2-letter codes.
var countryNames = map[string]string{
	"US": "UnitedStates",
	"CA": "Canada",
	"GB": "UnitedKingdom",
	"UK": "UnitedKingdom",
	"DE": "Germany",
	"FR": "France",
	"ES": "Spain",
	"IT": "Italy",
	"NL": "Netherlands",
	"AU": "Australia",
	"JP": "Japan",
	"BR": "Brazil",
	"MX": "Mexico",
	"IN": "India",
	"CN": "China",
	"RU": "Russia",
	"KR": "SouthKorea",
	"SG": "Singapore",
	"HK": "HongKong",
	"TW": "Taiwan",
	"PL": "Poland",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"FI": "Finland",
	"CH": "Switzerland",
	"AT": "Austria",
	"BE": "Belgium",
	"IE": "Ireland",
	"PT": "Portugal",
	"GR": "Greece",
	"CZ": "CzechRepublic",
	"RO": "Romania",
	"HU": "Hungary",
	"TR": "Turkey",
	"IL": "Israel",
	"AE": "UnitedArabEmirates",
	"SA": "SaudiArabia",
	"ZA": "SouthAfrica",
	"AR": "Argentina",
	"CL": "Chile",
	"CO": "Colombia",
	"NZ": "NewZealand",
	"TH": "Thailand",
	"PH": "Philippines",
	"MY": "Malaysia",
	"ID": "Indonesia",
	"VN": "Vietnam",
}

// countryName resolves a 2-letter code to the vendor's country name.
// Unknown codes pass through unchanged, the API validates them anyway.
func countryName(code string) string {
	if name, ok := countryNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}
