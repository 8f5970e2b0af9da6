package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCondition(t *testing.T) {
	tests := []struct {
		id       int
		text     string
		wantCond Condition
		wantIcon Icon
		wantText string
	}{
		{211, "thunderstorm", ConditionStorm, IconThunderstorm, "thunderstorm"},
		{301, "", ConditionDrizzle, IconDrizzle, "Drizzle"},
		{500, "light rain", ConditionRain, IconRain, "light rain"},
		{601, "snow", ConditionSnow, IconSnow, "snow"},
		{741, "fog", ConditionMist, IconFog, "fog"},
		{800, "clear sky", ConditionClear, IconClear, "clear sky"},
		{804, "overcast clouds", ConditionCloudy, IconCloudy, "overcast clouds"},
		{0, "", ConditionUnknown, IconCloudy, ""},
		{400, "mystery", ConditionUnknown, IconCloudy, "mystery"},
		{900, "tornado", ConditionUnknown, IconCloudy, "tornado"},
	}

	for _, tt := range tests {
		cond, icon, text := ClassifyCondition(tt.id, tt.text)
		assert.Equal(t, tt.wantCond, cond, "id %d", tt.id)
		assert.Equal(t, tt.wantIcon, icon, "id %d", tt.id)
		assert.Equal(t, tt.wantText, text, "id %d", tt.id)
	}
}
