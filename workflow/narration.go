package workflow

// Fixed narration lines.
const (
	NarrateAnalyzing     = "Analyzing trigger configuration..."
	NarrateMapping       = "Mapping data flows between services..."
	NarrateNotifications = "Setting up notification channels..."
	NarrateValidating    = "Validating workflow logic..."
	NarrateGenerating    = "Generating .0n SWITCH file..."
	NarrateFinalizing    = "Finalizing workflow package..."
)

// Narrate returns the progress lines shown while a workflow is built. The
// list depends only on its inputs and has no effect on the workflow.
func Narrate(selected, notifications []string) []string {
	services := distinct(selected)
	steps := make([]string, 0, len(services)+6)
	steps = append(steps, NarrateAnalyzing)
	for _, s := range services {
		steps = append(steps, "Connecting to "+Humanize(s)+"...")
	}
	steps = append(steps, NarrateMapping)
	if len(notifications) > 0 {
		steps = append(steps, NarrateNotifications)
	}
	return append(steps, NarrateValidating, NarrateGenerating, NarrateFinalizing)
}
