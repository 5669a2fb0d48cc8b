package workflow

import "slices"

// Action is a capability a service exposes to workflow steps.
type Action string

// Fallback actions for identifiers missing from the tables.
const (
	ActionExecute Action = "execute"
	ActionSend    Action = "send"
)

// Notification channels offered by the wizard.
const (
	ChannelEmail   = "email"
	ChannelSlack   = "slack"
	ChannelWebhook = "webhook"
	ChannelSMS     = "sms"
	ChannelDiscord = "discord"
	ChannelNone    = "none"
)

// ServiceCRM is the service that webhook notifications are routed through.
const ServiceCRM = "crm"

// serviceActions maps service identifiers to their default action. It is
// never written after initialization.
var serviceActions = map[string]Action{
	"anthropic":       "chat_completion",
	"openai":          "chat_completion",
	"slack":           "send_message",
	"discord":         "send_message",
	"sendgrid":        "send_email",
	"crm":             "contacts_create",
	"stripe":          "payment_intents_list",
	"github":          "repos_list",
	"supabase":        "query",
	"airtable":        "records_create",
	"notion":          "pages_create",
	"twilio":          "messages_create",
	"gmail":           "messages_send",
	"google_sheets":   "append_row",
	"google_drive":    "files_list",
	"mongodb":         "insert_one",
	"zendesk":         "tickets_create",
	"jira":            "issues_create",
	"hubspot":         "contacts_create",
	"mailchimp":       "lists_members_create",
	"google_calendar": "events_create",
	"calendly":        "events_list",
	"zoom":            "meetings_create",
	"linear":          "issues_create",
	"microsoft":       "graph_users_get",
	"shopify":         "products_list",
}

var notificationActions = map[string]Action{
	"slack":    "send_message",
	"discord":  "send_message",
	"sendgrid": "send_email",
	"twilio":   "messages_create",
	"webhook":  "http_post",
}

// LookupAction returns the default action for a service and whether the
// service is known.
func LookupAction(service string) (Action, bool) {
	a, ok := serviceActions[service]
	return a, ok
}

// ActionFor returns the default action for a service, or ActionExecute for
// unknown services.
func ActionFor(service string) Action {
	if a, ok := serviceActions[service]; ok {
		return a
	}
	return ActionExecute
}

// NotificationActionFor returns the delivery action for a notification
// channel, or ActionSend for channels without a dedicated action.
func NotificationActionFor(channel string) Action {
	if a, ok := notificationActions[channel]; ok {
		return a
	}
	return ActionSend
}

// NotificationService returns the service a notification step runs on.
// Webhook notifications run on the CRM service; every other channel is its
// own service.
func NotificationService(channel string) string {
	if channel == ChannelWebhook {
		return ServiceCRM
	}
	return channel
}

// KnownServices returns the identifiers present in the service table, sorted.
func KnownServices() []string {
	out := make([]string, 0, len(serviceActions))
	for s := range serviceActions {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
