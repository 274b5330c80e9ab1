package constants

import "time"

const (
	AppName           = "balanceday"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/balanceday/balanceday.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard 24-hour time format (HH:MM)
	TimeFormat = "15:04"

	// TimeFormat12 is the 12-hour suffixed form produced by the reschedulers
	TimeFormat12 = "3:04 PM"

	DefaultDayStart = "09:00"
	DefaultDayEnd   = "17:00"
	DefaultModel    = "gpt-4o"

	// Scheduling constants
	ShortBreakMinutes    = 15
	WellnessBreakMinutes = 30
	MaxFocusMinutes      = 90
	MinBlockMinutes      = 15

	// Notify constants
	NotifyLockfileName     = "balanceday-notifier.lock"
	NotifierAppIdentifier  = "balanceday-notifier"
	NotificationDurationMs = 5000

	OpenAIKeyEnv = "OPENAI_API_KEY"

	GenerateTimeout = 30 * time.Second
)
