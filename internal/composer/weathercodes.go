// internal/composer/weathercodes.go
package composer

// weatherCodes maps WMO interpretation codes to human descriptions.
var weatherCodes = map[int]string{
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	56: "freezing drizzle (light)",
	57: "freezing drizzle (dense)",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	66: "freezing rain (light)",
	67: "freezing rain (heavy)",
	71: "slight snow fall",
	73: "moderate snow fall",
	75: "heavy snow fall",
	77: "snow grains",
	80: "rain showers (slight)",
	81: "rain showers (moderate)",
	82: "rain showers (violent)",
	85: "snow showers (slight)",
	86: "snow showers (heavy)",
	95: "thunderstorm",
	96: "thunderstorm with hail (slight)",
	99: "thunderstorm with hail (heavy)",
}

// describeCode turns a WMO code into text; nil or unknown codes read as
// "unknown conditions".
func describeCode(code *int) string {
	if code == nil {
		return "unknown conditions"
	}
	if desc, ok := weatherCodes[*code]; ok {
		return desc
	}
	return "unknown conditions"
}
