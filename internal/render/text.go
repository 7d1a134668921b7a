package render

import (
	"fmt"
	"strings"

	"platepal/internal/mealplan"
)

// Text renders the view for a terminal.
func Text(v View, suggestions mealplan.SuggestionList) string {
	var sb strings.Builder
	sb.WriteString("Your Meal Plan\n")
	sb.WriteString("==============\n\n")

	for _, s := range v.Sections {
		sb.WriteString(s.Title + "\n")
		for _, item := range s.Items {
			fmt.Fprintf(&sb, "  %s\n", item.Name)
			fmt.Fprintf(&sb, "    %s\n", item.DiningHall)
			fmt.Fprintf(&sb, "    %s\n", joinBadges(item.Badges, " | "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Daily Totals\n")
	for _, f := range v.Totals {
		fmt.Fprintf(&sb, "  %-9s %s\n", f.Label, f.Value)
	}

	if v.ShowNotes {
		sb.WriteString("\n")
		sb.WriteString(v.Notes + "\n")
	}

	if len(suggestions) > 0 {
		sb.WriteString("\nQuick Suggestions\n")
		for _, s := range suggestions {
			fmt.Fprintf(&sb, "  - %s\n", s)
		}
	}

	return sb.String()
}

func joinBadges(badges []Badge, sep string) string {
	parts := make([]string, len(badges))
	for i, b := range badges {
		parts[i] = string(b)
	}
	return strings.Join(parts, sep)
}
