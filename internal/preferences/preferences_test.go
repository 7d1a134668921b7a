package preferences

import "testing"

func TestDefault(t *testing.T) {
	p := Default()
	if p.Calories != "2000" || p.Protein != "25" || p.Carbs != "45" || p.Fat != "30" {
		t.Errorf("Unexpected defaults: %+v", p)
	}
	if p.FoodPreferences != "" {
		t.Errorf("Expected empty food preferences, got %q", p.FoodPreferences)
	}
	if p.Restrictions != (DietaryRestrictions{}) {
		t.Errorf("Expected no restrictions, got %+v", p.Restrictions)
	}
}

func TestSettersCopyOnWrite(t *testing.T) {
	orig := Default()

	edited := orig.WithCalories("").WithProtein("abc").WithFoodPreferences("spicy")
	if orig.Calories != "2000" || orig.Protein != "25" || orig.FoodPreferences != "" {
		t.Fatalf("Setter mutated the receiver: %+v", orig)
	}
	if edited.Calories != "" || edited.Protein != "abc" || edited.FoodPreferences != "spicy" {
		t.Errorf("Setters did not store raw input: %+v", edited)
	}

	for _, f := range Fields {
		got := orig.Set(f, "x").Get(f)
		if got != "x" {
			t.Errorf("Set(%v) then Get returned %q", f, got)
		}
	}
}

func TestToggleRestriction(t *testing.T) {
	for _, r := range Restrictions {
		t.Run(string(r), func(t *testing.T) {
			orig := Default()
			toggled := orig.ToggleRestriction(r)

			if orig.Restrictions.Get(r) {
				t.Fatal("Toggle mutated the receiver")
			}
			for _, other := range Restrictions {
				want := other == r
				if toggled.Restrictions.Get(other) != want {
					t.Errorf("After toggling %s, %s = %v", r, other, !want)
				}
			}

			back := toggled.ToggleRestriction(r)
			if back.Restrictions != orig.Restrictions {
				t.Errorf("Toggling twice should restore the flags, got %+v", back.Restrictions)
			}
		})
	}

	unknown := Default().ToggleRestriction("kosher")
	if unknown.Restrictions != (DietaryRestrictions{}) {
		t.Errorf("Unknown restriction changed flags: %+v", unknown.Restrictions)
	}
}

func TestLabelAndParseRestriction(t *testing.T) {
	labels := map[Restriction]string{
		Vegetarian: "Vegetarian",
		Vegan:      "Vegan",
		GlutenFree: "Gluten Free",
		DairyFree:  "Dairy Free",
	}
	for r, want := range labels {
		if got := Label(r); got != want {
			t.Errorf("Label(%s) = %q, want %q", r, got, want)
		}
	}

	for _, in := range []string{"glutenFree", "gluten-free", "Gluten Free", " GLUTENFREE "} {
		r, ok := ParseRestriction(in)
		if !ok || r != GlutenFree {
			t.Errorf("ParseRestriction(%q) = %q, %v", in, r, ok)
		}
	}
	if _, ok := ParseRestriction("paleo"); ok {
		t.Error("ParseRestriction accepted an unknown restriction")
	}
}
