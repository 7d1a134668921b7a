package render

import (
	"fmt"
	"strings"

	"platepal/internal/mealplan"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown escapes the characters legacy Telegram Markdown treats as markup.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// Markdown renders the view as a Telegram (legacy Markdown) message.
func Markdown(v View, suggestions mealplan.SuggestionList) string {
	var sb strings.Builder
	sb.WriteString("🍽 *Your Meal Plan*\n\n")

	for _, s := range v.Sections {
		fmt.Fprintf(&sb, "*%s*\n", EscapeMarkdown(s.Title))
		for _, item := range s.Items {
			fmt.Fprintf(&sb, "• %s\n", EscapeMarkdown(item.Name))
			if item.DiningHall != "" {
				fmt.Fprintf(&sb, "  _%s_\n", EscapeMarkdown(item.DiningHall))
			}
			fmt.Fprintf(&sb, "  `%s`\n", strings.ReplaceAll(joinBadges(item.Badges, " · "), "`", "'"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("📊 *Daily Totals*\n")
	for _, f := range v.Totals {
		fmt.Fprintf(&sb, "• %s: %s\n", f.Label, EscapeMarkdown(f.Value))
	}

	if v.ShowNotes {
		fmt.Fprintf(&sb, "\n📝 _%s_\n", EscapeMarkdown(v.Notes))
	}

	if len(suggestions) > 0 {
		sb.WriteString("\n💡 *Quick Suggestions*\n")
		for _, s := range suggestions {
			fmt.Fprintf(&sb, "• %s\n", EscapeMarkdown(s))
		}
	}

	return sb.String()
}
