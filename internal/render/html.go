package render

import (
	"html/template"
	"io"

	"platepal/internal/mealplan"
)

var pageTemplate = template.Must(template.New("plan").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PlatePal Meal Plan</title>
<style>
body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 0; background: #fff; color: #1f2937; }
header { background: #8B0000; color: #fff; padding: 20px; text-align: center; }
main { max-width: 720px; margin: 0 auto; padding: 20px; }
.meal-section { margin-bottom: 20px; }
.meal-item { border-left: 4px solid #8B0000; padding: 8px 12px; margin: 8px 0; background: #fafafa; }
.item-location { color: #6b7280; font-size: 14px; }
.badge { display: inline-block; background: #fde2e2; color: #8B0000; border-radius: 10px; padding: 2px 8px; margin: 4px 4px 0 0; font-size: 12px; }
.totals { display: flex; justify-content: space-between; background: #8B0000; color: #fff; padding: 16px; border-radius: 8px; }
.total-item { text-align: center; }
.notes { margin-top: 16px; padding: 12px; background: #fff7ed; border-radius: 8px; }
.suggestion { padding: 8px 0; border-bottom: 1px solid #e5e7eb; }
</style>
</head>
<body>
<header><h1>PlatePal</h1></header>
<main>
<h2>Your Meal Plan</h2>
{{range .View.Sections}}<section class="meal-section" id="{{.Slot}}">
<h3 class="meal-title">{{.Title}}</h3>
{{range .Items}}<div class="meal-item">
<div class="item-name">{{.Name}}</div>
<div class="item-location">{{.DiningHall}}</div>
<div class="nutrition-row">{{range .Badges}}<span class="badge">{{.}}</span>{{end}}</div>
</div>
{{end}}</section>
{{end}}<section class="totals">
{{range .View.Totals}}<div class="total-item"><div class="total-number">{{.Value}}</div><div class="total-label">{{.Label}}</div></div>
{{end}}</section>
{{if .View.ShowNotes}}<section class="notes">{{.View.Notes}}</section>
{{end}}{{if .Suggestions}}<section class="suggestions">
<h2>Quick Suggestions</h2>
{{range .Suggestions}}<div class="suggestion">{{.}}</div>
{{end}}</section>
{{end}}</main>
</body>
</html>
`))

// HTML writes the view as a standalone page.
func HTML(w io.Writer, v View, suggestions mealplan.SuggestionList) error {
	return pageTemplate.Execute(w, struct {
		View        View
		Suggestions mealplan.SuggestionList
	}{v, suggestions})
}
