package mealplan

import (
	"bytes"
	"encoding/json"
)

// Figure is one nutrition number exactly as the server sent it. It is never
// parsed or recomputed; an absent or null value is the empty Figure.
type Figure string

// UnmarshalJSON keeps the raw number text. Strings are unquoted, null
// leaves the Figure empty and any other JSON value is kept verbatim.
func (f *Figure) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Figure(s)
	default:
		*f = Figure(b)
	}
	return nil
}

// MarshalJSON writes numeric text back as a JSON number and anything else as a string.
func (f Figure) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	if json.Valid([]byte(f)) && isNumber(string(f)) {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

func isNumber(s string) bool {
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}

// String renders the figure; an absent value shows as "-".
func (f Figure) String() string {
	if f == "" {
		return "-"
	}
	return string(f)
}

// MealItem is one dish picked by the server.
type MealItem struct {
	Item       string `json:"item"`
	DiningHall string `json:"dining_hall"`
	Calories   Figure `json:"calories"`
	Protein    Figure `json:"protein"`
	Carbs      Figure `json:"carbs"`
	Fat        Figure `json:"fat"`
}

// Slot names one meal bucket.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
	Snacks    Slot = "snacks"
)

// Slots lists the meal buckets in display order.
var Slots = []Slot{Breakfast, Lunch, Dinner, Snacks}

// MealPlan groups items by meal slot. Any bucket may be empty or absent.
type MealPlan struct {
	Breakfast []MealItem `json:"breakfast"`
	Lunch     []MealItem `json:"lunch"`
	Dinner    []MealItem `json:"dinner"`
	Snacks    []MealItem `json:"snacks"`
}

// Items returns the bucket for slot s.
func (m MealPlan) Items(s Slot) []MealItem {
	switch s {
	case Breakfast:
		return m.Breakfast
	case Lunch:
		return m.Lunch
	case Dinner:
		return m.Dinner
	case Snacks:
		return m.Snacks
	}
	return nil
}

// DiningHalls returns the distinct dining halls used by the plan in order of
// first appearance.
func (m MealPlan) DiningHalls() []string {
	var halls []string
	seen := make(map[string]struct{})
	for _, s := range Slots {
		for _, item := range m.Items(s) {
			if item.DiningHall == "" {
				continue
			}
			if _, ok := seen[item.DiningHall]; ok {
				continue
			}
			seen[item.DiningHall] = struct{}{}
			halls = append(halls, item.DiningHall)
		}
	}
	return halls
}

// Totals are the server's aggregate figures for the whole plan.
type Totals struct {
	Calories Figure `json:"calories"`
	Protein  Figure `json:"protein"`
	Carbs    Figure `json:"carbs"`
	Fat      Figure `json:"fat"`
}

// Result is the payload of a successful generate call. It is not validated:
// missing fields decode to their zero values.
type Result struct {
	MealPlan MealPlan `json:"meal_plan"`
	Totals   Totals   `json:"totals"`
	Notes    string   `json:"notes"`
}

// The UnmarshalJSON methods below never fail on valid JSON. A value of the
// wrong shape leaves only its own field empty: a text field holding a number
// keeps the number's text, a bucket that is not an array is absent, and a
// non-object inside a bucket is dropped.

func (r *Result) UnmarshalJSON(b []byte) error {
	*r = Result{}
	fields := object(b)
	if fields == nil {
		return nil
	}
	_ = r.MealPlan.UnmarshalJSON(fields["meal_plan"])
	_ = r.Totals.UnmarshalJSON(fields["totals"])
	r.Notes = text(fields["notes"])
	return nil
}

func (m *MealPlan) UnmarshalJSON(b []byte) error {
	*m = MealPlan{}
	fields := object(b)
	if fields == nil {
		return nil
	}
	m.Breakfast = items(fields[string(Breakfast)])
	m.Lunch = items(fields[string(Lunch)])
	m.Dinner = items(fields[string(Dinner)])
	m.Snacks = items(fields[string(Snacks)])
	return nil
}

func (it *MealItem) UnmarshalJSON(b []byte) error {
	*it = MealItem{}
	fields := object(b)
	if fields == nil {
		return nil
	}
	it.Item = text(fields["item"])
	it.DiningHall = text(fields["dining_hall"])
	it.Calories = figure(fields["calories"])
	it.Protein = figure(fields["protein"])
	it.Carbs = figure(fields["carbs"])
	it.Fat = figure(fields["fat"])
	return nil
}

func (t *Totals) UnmarshalJSON(b []byte) error {
	*t = Totals{}
	fields := object(b)
	if fields == nil {
		return nil
	}
	t.Calories = figure(fields["calories"])
	t.Protein = figure(fields["protein"])
	t.Carbs = figure(fields["carbs"])
	t.Fat = figure(fields["fat"])
	return nil
}

// object returns the members of a JSON object, or nil for anything else.
func object(b []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if len(b) == 0 || json.Unmarshal(b, &fields) != nil {
		return nil
	}
	return fields
}

func items(b []byte) []MealItem {
	var raw []json.RawMessage
	if len(b) == 0 || json.Unmarshal(b, &raw) != nil {
		return nil
	}
	var out []MealItem
	for _, r := range raw {
		if object(r) == nil {
			continue
		}
		var it MealItem
		_ = it.UnmarshalJSON(r)
		out = append(out, it)
	}
	return out
}

// text reads a string; numbers and booleans keep their literal text and
// anything else is empty.
func text(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	switch b[0] {
	case '"':
		var s string
		if json.Unmarshal(b, &s) != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	}
	return string(b)
}

func figure(b []byte) Figure {
	var f Figure
	if len(b) == 0 || f.UnmarshalJSON(b) != nil {
		return ""
	}
	return f
}

// SuggestionList holds quick suggestion tips in server order.
type SuggestionList []string
