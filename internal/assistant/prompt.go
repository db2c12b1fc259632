package assistant

import (
	"fmt"
	"strings"

	"github.com/evamaren/daybook/internal/models"
)

// DefaultContextEntries caps how many recent journal entries a chat request
// pulls in as context.
const DefaultContextEntries = 7

// BuildPrompt frames the user's message for the assistant, optionally
// preceded by recent journal entries rendered as plain text blocks.
func BuildPrompt(message string, entries []models.JournalEntry) string {
	var builder strings.Builder
	builder.WriteString("You are a helpful assistant for a personal journaling and meal-planning app.\n")

	if len(entries) > 0 {
		builder.WriteString("Recent journal entries from the user, newest first:\n\n")
		builder.WriteString(FormatEntries(entries))
		builder.WriteString("\n")
	}

	builder.WriteString("Respond to the following message: ")
	builder.WriteString(message)
	return builder.String()
}

// FormatEntries renders entries as plain text blocks separated by blank
// lines.
func FormatEntries(entries []models.JournalEntry) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		blocks = append(blocks, fmt.Sprintf(
			"Date: %s\nEnergy: %d/10, Productivity: %d/10\n%s",
			entry.Date, entry.Energy, entry.Productivity, entry.Content,
		))
	}
	return strings.Join(blocks, "\n\n")
}
