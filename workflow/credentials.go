package workflow

// Channels that never count as credentialed services when notifications are
// merged into the queue.
var credentialFreeChannels = map[string]struct{}{
	ChannelEmail:   {},
	ChannelWebhook: {},
}

// Identifiers removed from the queue regardless of where they came from.
var noCredentialServices = map[string]struct{}{
	"webhook": {},
	"manual":  {},
}

// CredentialQueue returns the services the user must supply secrets for:
// the selected services plus every credentialed notification channel,
// deduplicated in first-seen order, without webhook or manual.
func CredentialQueue(selected, notifications []string) []string {
	candidates := make([]string, 0, len(selected)+len(notifications))
	candidates = append(candidates, selected...)
	for _, ch := range notifications {
		if _, free := credentialFreeChannels[ch]; !free {
			candidates = append(candidates, ch)
		}
	}

	queue := make([]string, 0, len(candidates))
	for _, s := range distinct(candidates) {
		if _, skip := noCredentialServices[s]; !skip {
			queue = append(queue, s)
		}
	}
	return queue
}
