package weather

const (
	IconThunderstorm Icon = "weather-lightning"
	IconDrizzle      Icon = "weather-partly-rainy"
	IconRain         Icon = "weather-rainy"
	IconSnow         Icon = "weather-snowy"
	IconFog          Icon = "weather-fog"
	IconClear        Icon = "weather-sunny"
	IconCloudy       Icon = "weather-cloudy"
)

// conditionRange maps an inclusive block of condition ids.
type conditionRange struct {
	min, max  int
	condition Condition
	icon      Icon
	text      string
}

// Condition ids follow the OpenWeatherMap grouping; other sources translate
// their own codes onto it.
var conditionRanges = []conditionRange{
	{200, 299, ConditionStorm, IconThunderstorm, "Thunderstorm"},
	{300, 399, ConditionDrizzle, IconDrizzle, "Drizzle"},
	{500, 599, ConditionRain, IconRain, "Rain"},
	{600, 699, ConditionSnow, IconSnow, "Snow"},
	{700, 799, ConditionMist, IconFog, "Fog"},
	{800, 800, ConditionClear, IconClear, "Clear sky"},
	{801, 899, ConditionCloudy, IconCloudy, "Clouds"},
}

// ClassifyCondition resolves a condition id and the source description into
// the normalized condition, its icon and the text to show. The source text is
// kept whenever it is present. Unknown ids fall back to the cloudy icon.
func ClassifyCondition(id int, sourceText string) (Condition, Icon, string) {
	for _, r := range conditionRanges {
		if id >= r.min && id <= r.max {
			text := sourceText
			if text == "" {
				text = r.text
			}
			return r.condition, r.icon, text
		}
	}
	return ConditionUnknown, IconCloudy, sourceText
}
