package render

import (
	"strings"

	"platepal/internal/mealplan"
)

// Badge is one nutrition label on a meal item, e.g. "12g protein".
type Badge string

// ItemView is a single rendered meal item.
type ItemView struct {
	Name       string
	DiningHall string
	Badges     []Badge
}

// Section is one non-empty meal slot.
type Section struct {
	Slot  mealplan.Slot
	Title string
	Items []ItemView
}

// Figure is one aggregate number in the totals block.
type Figure struct {
	Value string
	Label string
}

// View is a meal plan result laid out for display. Every number is the
// server's own value; nothing is recomputed.
type View struct {
	Sections  []Section
	Totals    []Figure
	Notes     string
	ShowNotes bool
}

// Build lays out r. Empty or missing slots are skipped, the totals block is
// always present and the notes block only when notes are non-empty.
func Build(r *mealplan.Result) View {
	if r == nil {
		r = &mealplan.Result{}
	}

	var v View
	for _, slot := range mealplan.Slots {
		items := r.MealPlan.Items(slot)
		if len(items) == 0 {
			continue
		}

		section := Section{Slot: slot, Title: Title(string(slot))}
		for _, item := range items {
			section.Items = append(section.Items, ItemView{
				Name:       item.Item,
				DiningHall: item.DiningHall,
				Badges: []Badge{
					Badge(item.Calories.String() + " cal"),
					Badge(item.Protein.String() + "g protein"),
					Badge(item.Carbs.String() + "g carbs"),
					Badge(item.Fat.String() + "g fat"),
				},
			})
		}
		v.Sections = append(v.Sections, section)
	}

	v.Totals = []Figure{
		{Value: r.Totals.Calories.String(), Label: "Calories"},
		{Value: r.Totals.Protein.String() + "g", Label: "Protein"},
		{Value: r.Totals.Carbs.String() + "g", Label: "Carbs"},
		{Value: r.Totals.Fat.String() + "g", Label: "Fat"},
	}

	v.Notes = r.Notes
	v.ShowNotes = r.Notes != ""
	return v
}

// Title capitalises the first letter of s.
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
