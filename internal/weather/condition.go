package weather

import (
	"strings"

	"github.com/i474232898/weather-command/internal/common"
)

// ClassifyCondition maps a free-text provider description (Chinese or English)
// to a normalized Condition. Order matters: "雷阵雨" is a storm, "雨夹雪" is snow.
func ClassifyCondition(description string) Condition {
	text := strings.ToLower(strings.TrimSpace(description))
	switch {
	case text == "":
		return ConditionUnknown
	case common.HasAny(text, "雷", "thunder", "storm"):
		return ConditionStorm
	case common.HasAny(text, "雪", "snow", "sleet", "blizzard"):
		return ConditionSnow
	case common.HasAny(text, "雨", "rain", "shower", "drizzle"):
		return ConditionRain
	case common.HasAny(text, "雾", "霾", "沙", "尘", "fog", "mist", "haze"):
		return ConditionMist
	case common.HasAny(text, "云", "阴", "cloud", "overcast"):
		return ConditionCloudy
	case common.HasAny(text, "晴", "sunny", "clear"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}
