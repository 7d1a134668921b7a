package render

import (
	"bytes"
	"strings"
	"testing"

	"platepal/internal/mealplan"

	"github.com/PuerkitoBio/goquery"
)

func sampleResult() *mealplan.Result {
	return &mealplan.Result{
		MealPlan: mealplan.MealPlan{
			Breakfast: []mealplan.MealItem{
				{Item: "Oatmeal", DiningHall: "Turner Place", Calories: "310", Protein: "11", Carbs: "54", Fat: "6"},
			},
			Dinner: []mealplan.MealItem{
				{Item: "Grilled Chicken", DiningHall: "Dietrick Hall (D2)", Calories: "420", Protein: "45.5", Carbs: "10", Fat: "18"},
				{Item: "Brown Rice", DiningHall: "Dietrick Hall (D2)", Calories: "220", Protein: "5", Carbs: "45", Fat: "2"},
			},
		},
		Totals: mealplan.Totals{Calories: "950", Protein: "61.5", Carbs: "109", Fat: "26"},
		Notes:  "Drink plenty of water.",
	}
}

func TestBuild(t *testing.T) {
	v := Build(sampleResult())

	if len(v.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(v.Sections))
	}
	if v.Sections[0].Title != "Breakfast" || v.Sections[1].Title != "Dinner" {
		t.Errorf("Unexpected section titles: %q, %q", v.Sections[0].Title, v.Sections[1].Title)
	}

	dinner := v.Sections[1]
	if dinner.Items[0].Name != "Grilled Chicken" || dinner.Items[1].Name != "Brown Rice" {
		t.Errorf("Items out of order: %+v", dinner.Items)
	}
	wantBadges := []Badge{"420 cal", "45.5g protein", "10g carbs", "18g fat"}
	for i, b := range wantBadges {
		if dinner.Items[0].Badges[i] != b {
			t.Errorf("Badge %d: expected %q, got %q", i, b, dinner.Items[0].Badges[i])
		}
	}

	wantTotals := []Figure{
		{"950", "Calories"}, {"61.5g", "Protein"}, {"109g", "Carbs"}, {"26g", "Fat"},
	}
	for i, f := range wantTotals {
		if v.Totals[i] != f {
			t.Errorf("Total %d: expected %+v, got %+v", i, f, v.Totals[i])
		}
	}

	if !v.ShowNotes || v.Notes != "Drink plenty of water." {
		t.Errorf("Expected notes to be shown, got %+v", v)
	}
}

func TestBuildEmptyPlan(t *testing.T) {
	v := Build(&mealplan.Result{})

	if len(v.Sections) != 0 {
		t.Errorf("Expected zero sections, got %d", len(v.Sections))
	}
	if len(v.Totals) != 4 {
		t.Fatalf("Expected totals block with 4 figures, got %d", len(v.Totals))
	}
	if v.Totals[0].Value != "-" || v.Totals[1].Value != "-g" {
		t.Errorf("Expected absent totals to render as placeholders, got %+v", v.Totals)
	}
	if v.ShowNotes {
		t.Error("Notes should be hidden when empty")
	}

	if nilView := Build(nil); len(nilView.Totals) != 4 {
		t.Error("Build(nil) should still render totals")
	}
}

func TestTitle(t *testing.T) {
	for in, want := range map[string]string{"breakfast": "Breakfast", "snacks": "Snacks", "": ""} {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestText(t *testing.T) {
	out := Text(Build(sampleResult()), mealplan.SuggestionList{"Try the salad bar"})

	for _, want := range []string{
		"Breakfast\n",
		"  Oatmeal\n",
		"    Turner Place\n",
		"310 cal | 11g protein | 54g carbs | 6g fat",
		"Daily Totals",
		"Calories  950",
		"Drink plenty of water.",
		"Quick Suggestions\n  - Try the salad bar",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Lunch") {
		t.Error("Empty lunch bucket should not be rendered")
	}
	if strings.Index(out, "Breakfast") > strings.Index(out, "Dinner") {
		t.Error("Sections out of slot order")
	}
}

func TestMarkdown(t *testing.T) {
	r := sampleResult()
	r.Notes = "Eat_slowly"
	out := Markdown(Build(r), nil)

	if !strings.Contains(out, "*Breakfast*") {
		t.Error("Missing breakfast header")
	}
	if !strings.Contains(out, "_Dietrick Hall (D2)_") {
		t.Error("Missing dining hall")
	}
	if !strings.Contains(out, "📝 _Eat\\_slowly_") {
		t.Errorf("Notes not escaped:\n%s", out)
	}
	if strings.Contains(out, "Quick Suggestions") {
		t.Error("Suggestions header rendered for an empty list")
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	r := sampleResult()
	r.Notes = "<b>bold</b>"
	if err := HTML(&buf, Build(r), mealplan.SuggestionList{"One", "Two"}); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("Failed to parse output: %v", err)
	}

	titles := doc.Find(".meal-section .meal-title").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	if strings.Join(titles, ",") != "Breakfast,Dinner" {
		t.Errorf("Unexpected section titles %v", titles)
	}

	if n := doc.Find("#dinner .meal-item").Length(); n != 2 {
		t.Errorf("Expected 2 dinner items, got %d", n)
	}
	badges := doc.Find("#breakfast .badge").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	if strings.Join(badges, "|") != "310 cal|11g protein|54g carbs|6g fat" {
		t.Errorf("Unexpected badges %v", badges)
	}

	if n := doc.Find(".totals .total-item").Length(); n != 4 {
		t.Errorf("Expected 4 totals, got %d", n)
	}
	if got := doc.Find(".notes").Text(); got != "<b>bold</b>" {
		t.Errorf("Expected escaped notes text, got %q", got)
	}
	if doc.Find(".notes b").Length() != 0 {
		t.Error("Notes markup was not escaped")
	}
	if n := doc.Find(".suggestion").Length(); n != 2 {
		t.Errorf("Expected 2 suggestions, got %d", n)
	}
}

func TestHTMLEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, Build(&mealplan.Result{}), nil); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find(".meal-section").Length() != 0 {
		t.Error("Expected no meal sections")
	}
	if doc.Find(".totals").Length() != 1 {
		t.Error("Expected the totals section")
	}
	if doc.Find(".notes, .suggestions").Length() != 0 {
		t.Error("Expected no notes or suggestions")
	}
}
