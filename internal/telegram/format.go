package telegram

import (
	"fmt"
	"strings"

	"platepal/internal/app"
	"platepal/internal/dining"
	"platepal/internal/preferences"
	"platepal/internal/render"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func formatPreferences(st app.State) string {
	p := st.Preferences

	var sb strings.Builder
	sb.WriteString("🥗 *Your Preferences*\n\n")
	sb.WriteString(fmt.Sprintf("*Target Calories:* %s\n", orDash(p.Calories)))
	sb.WriteString(fmt.Sprintf("*Macros:* %s%% protein · %s%% carbs · %s%% fat\n",
		orDash(p.Protein), orDash(p.Carbs), orDash(p.Fat)))

	var on []string
	for _, r := range preferences.Restrictions {
		if p.Restrictions.Get(r) {
			on = append(on, preferences.Label(r))
		}
	}
	if len(on) == 0 {
		sb.WriteString("*Restrictions:* none\n")
	} else {
		sb.WriteString(fmt.Sprintf("*Restrictions:* %s\n", strings.Join(on, ", ")))
	}

	if p.FoodPreferences != "" {
		sb.WriteString(fmt.Sprintf("*Food Preferences:* %s\n", render.EscapeMarkdown(p.FoodPreferences)))
	}

	sb.WriteString(fmt.Sprintf("\n_Server: %s_", st.Status.Label()))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return render.EscapeMarkdown(s)
}

func formatAlert(a app.Alert) string {
	return fmt.Sprintf("❌ *%s:*\n%s", render.EscapeMarkdown(a.Title), render.EscapeMarkdown(a.Message))
}

func preferencesKeyboard(st app.State) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, r := range preferences.Restrictions {
		mark := "⬜"
		if st.Preferences.Restrictions.Get(r) {
			mark = "✅"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(mark+" "+preferences.Label(r), "toggle|"+string(r)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	label := "🍽 Generate Meal Plan"
	if st.Loading {
		label = "⏳ Generating..."
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, "generate")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// hallsKeyboard offers directions to every known dining hall in the plan.
func hallsKeyboard(st app.State) (tgbotapi.InlineKeyboardMarkup, bool) {
	if st.Result == nil {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, name := range st.Result.MealPlan.DiningHalls() {
		h, ok := dining.Lookup(name)
		if !ok {
			continue
		}
		data := "hall|" + h.ShortName()
		if len(data) > 64 {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📍 "+h.ShortName(), data)))
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
