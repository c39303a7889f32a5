package prompt

import (
	_ "embed"
	"strings"
	"time"
)

//go:embed template/concierge.txt
var conciergeRaw string

// System renders the concierge system prompt with the current date injected,
// so the model can resolve relative phrasings like "tonight" or "tomorrow".
func System(now time.Time) string {
	text := strings.TrimSpace(conciergeRaw)
	return strings.ReplaceAll(text, "{current_date}", now.Format("Monday, January 2, 2006"))
}
