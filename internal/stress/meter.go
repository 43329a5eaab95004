package stress

// Meter is the presentation metadata for a stress level.
type Meter struct {
	Color     string
	Label     string
	Animation string
}

// band is one row of the threshold table, matched from the top.
type band struct {
	min       int
	color     string
	label     string
	animation string
}

// bands is the single threshold table. Color and animation change at
// 4/6/8; labels change at 3/5/7/9.
var bands = []band{
	{min: 9, color: "red", label: "Crisis", animation: "warning-pulse"},
	{min: 8, color: "red", label: "High Stress", animation: "warning-pulse"},
	{min: 7, color: "orange", label: "High Stress", animation: "pulse-stress"},
	{min: 6, color: "orange", label: "Moderate", animation: "pulse-stress"},
	{min: 5, color: "yellow", label: "Moderate", animation: "heartbeat"},
	{min: 4, color: "yellow", label: "Low Stress", animation: "heartbeat"},
	{min: 3, color: "green", label: "Low Stress", animation: "none"},
	{min: MinLevel, color: "green", label: "Calm", animation: "none"},
}

// MeterFor returns the meter row for level. Out-of-range levels are clamped.
func MeterFor(level int) Meter {
	level = clamp(level, MinLevel, MaxLevel)
	for _, b := range bands {
		if level >= b.min {
			return Meter{Color: b.color, Label: b.label, Animation: b.animation}
		}
	}
	last := bands[len(bands)-1]
	return Meter{Color: last.color, Label: last.label, Animation: last.animation}
}

// Percentage converts a level to the 10–100 meter fill.
func Percentage(level int) int {
	return level * 10
}
