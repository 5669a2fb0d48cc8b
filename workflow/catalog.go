package workflow

import "fmt"

// Frequency preset identifiers offered by the wizard.
const (
	PresetRealtime = "realtime"
	PresetHourly   = "hourly"
	PresetDaily    = "daily"
	PresetWeekly   = "weekly"
	PresetCustom   = "custom"
)

// FrequencyPreset is a selectable run cadence.
type FrequencyPreset struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Cron        string `json:"cron,omitempty" yaml:"cron,omitempty"`
}

// ChannelOption is a selectable notification channel.
type ChannelOption struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// Catalog lists the wizard choices clients render.
type Catalog struct {
	Notifications []ChannelOption   `json:"notifications" yaml:"notifications"`
	Frequencies   []FrequencyPreset `json:"frequencies" yaml:"frequencies"`
	Services      []string          `json:"services" yaml:"services"`
}

var frequencyPresets = []FrequencyPreset{
	{ID: PresetRealtime, Label: "Real-time", Description: "Runs whenever the trigger fires"},
	{ID: PresetHourly, Label: "Every Hour", Description: "Runs at the top of every hour", Cron: "0 * * * *"},
	{ID: PresetDaily, Label: "Daily", Description: "Runs once a day at midnight", Cron: "0 0 * * *"},
	{ID: PresetWeekly, Label: "Weekly", Description: "Runs Mondays at 9:00", Cron: "0 9 * * 1"},
	{ID: PresetCustom, Label: "Custom", Description: "Runs on a custom cron expression"},
}

var channelOptions = []ChannelOption{
	{ID: ChannelEmail, Label: "Email", Description: "Email notifications"},
	{ID: ChannelSlack, Label: "Slack", Description: "Slack channel alerts"},
	{ID: ChannelWebhook, Label: "Webhook", Description: "Custom HTTP callback"},
	{ID: ChannelSMS, Label: "SMS", Description: "Text message alerts"},
	{ID: ChannelDiscord, Label: "Discord", Description: "Discord server alerts"},
	{ID: ChannelNone, Label: "None", Description: "No notifications"},
}

// DefaultCatalog returns a copy of the wizard choices.
func DefaultCatalog() Catalog {
	return Catalog{
		Notifications: append([]ChannelOption(nil), channelOptions...),
		Frequencies:   append([]FrequencyPreset(nil), frequencyPresets...),
		Services:      KnownServices(),
	}
}

// FrequencyFromPreset builds the FrequencySpec the wizard sends for a preset.
// Cron presets are sent with type "cron"; realtime keeps its id as type and
// carries no cron. The custom preset requires customCron.
func FrequencyFromPreset(id, customCron string) (*FrequencySpec, error) {
	if id == PresetCustom {
		if customCron == "" {
			return nil, fmt.Errorf("frequency preset %q requires a cron expression", id)
		}
		return &FrequencySpec{Type: "cron", Cron: customCron}, nil
	}
	for _, p := range frequencyPresets {
		if p.ID != id {
			continue
		}
		if p.Cron == "" {
			return &FrequencySpec{Type: p.ID}, nil
		}
		return &FrequencySpec{Type: "cron", Cron: p.Cron}, nil
	}
	return nil, fmt.Errorf("unknown frequency preset %q", id)
}
