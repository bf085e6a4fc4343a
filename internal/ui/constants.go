package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconBack    = "←"
	IconFolder  = "📁"
	IconFile    = "📄"
	IconError   = "❌"
	IconDone    = "✓"
	IconPending = "⏳"
	IconMusic   = "🎵"
)

// Text fragments
const (
	ProgressLabelFormat = "%d%%"
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// Layout sizing (FileRow / views)
const (
	StatusLabelWidth  float32 = 120
	SizeLabelWidth    float32 = 80
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 48

	WindowWidth  float32 = 720
	WindowHeight float32 = 520

	LogoSize float32 = 32
)
