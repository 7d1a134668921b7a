package preferences

import "strings"

// Restriction identifies one dietary restriction flag.
type Restriction string

const (
	Vegetarian Restriction = "vegetarian"
	Vegan      Restriction = "vegan"
	GlutenFree Restriction = "glutenFree"
	DairyFree  Restriction = "dairyFree"
)

// Restrictions lists every restriction in canonical order.
var Restrictions = []Restriction{Vegetarian, Vegan, GlutenFree, DairyFree}

// Label returns the restriction as shown on a form, e.g. "Gluten Free".
func Label(r Restriction) string {
	s := string(r)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToUpper(s[:1]))
	for _, c := range s[1:] {
		if c >= 'A' && c <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ParseRestriction accepts the canonical identifier, its kebab-case wire form
// or its label, case-insensitively.
func ParseRestriction(s string) (Restriction, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Restrictions {
		if needle == strings.ToLower(string(r)) || needle == KebabCase(string(r)) || needle == strings.ToLower(Label(r)) {
			return r, true
		}
	}
	return "", false
}

// DietaryRestrictions holds every restriction flag. All four are always present.
type DietaryRestrictions struct {
	Vegetarian bool
	Vegan      bool
	GlutenFree bool
	DairyFree  bool
}

// Get reports the flag for r. Unknown restrictions are never set.
func (d DietaryRestrictions) Get(r Restriction) bool {
	switch r {
	case Vegetarian:
		return d.Vegetarian
	case Vegan:
		return d.Vegan
	case GlutenFree:
		return d.GlutenFree
	case DairyFree:
		return d.DairyFree
	}
	return false
}

// With returns a copy with the flag for r set to v.
func (d DietaryRestrictions) With(r Restriction, v bool) DietaryRestrictions {
	switch r {
	case Vegetarian:
		d.Vegetarian = v
	case Vegan:
		d.Vegan = v
	case GlutenFree:
		d.GlutenFree = v
	case DairyFree:
		d.DairyFree = v
	}
	return d
}

// Toggle returns a copy with exactly the flag for r flipped.
func (d DietaryRestrictions) Toggle(r Restriction) DietaryRestrictions {
	return d.With(r, !d.Get(r))
}

// Preferences is the editable nutrition form. Numeric targets are kept as
// the text the user typed; nothing is validated on edit.
type Preferences struct {
	Calories        string
	Protein         string
	Carbs           string
	Fat             string
	FoodPreferences string
	Restrictions    DietaryRestrictions
}

// Default returns the form as it appears at startup.
func Default() Preferences {
	return Preferences{
		Calories: "2000",
		Protein:  "25",
		Carbs:    "45",
		Fat:      "30",
	}
}

func (p Preferences) WithCalories(v string) Preferences {
	p.Calories = v
	return p
}

func (p Preferences) WithProtein(v string) Preferences {
	p.Protein = v
	return p
}

func (p Preferences) WithCarbs(v string) Preferences {
	p.Carbs = v
	return p
}

func (p Preferences) WithFat(v string) Preferences {
	p.Fat = v
	return p
}

func (p Preferences) WithFoodPreferences(v string) Preferences {
	p.FoodPreferences = v
	return p
}

func (p Preferences) WithRestriction(r Restriction, v bool) Preferences {
	p.Restrictions = p.Restrictions.With(r, v)
	return p
}

func (p Preferences) ToggleRestriction(r Restriction) Preferences {
	p.Restrictions = p.Restrictions.Toggle(r)
	return p
}

// Field names one free-text field of the form.
type Field int

const (
	FieldCalories Field = iota
	FieldProtein
	FieldCarbs
	FieldFat
	FieldFoodPreferences
)

// Fields lists the text fields in form order.
var Fields = []Field{FieldCalories, FieldProtein, FieldCarbs, FieldFat, FieldFoodPreferences}

func (f Field) String() string {
	switch f {
	case FieldCalories:
		return "Target Calories"
	case FieldProtein:
		return "Protein"
	case FieldCarbs:
		return "Carbs"
	case FieldFat:
		return "Fat"
	case FieldFoodPreferences:
		return "Food Preferences"
	}
	return "Unknown"
}

// Set returns a copy with field f replaced by v.
func (p Preferences) Set(f Field, v string) Preferences {
	switch f {
	case FieldCalories:
		return p.WithCalories(v)
	case FieldProtein:
		return p.WithProtein(v)
	case FieldCarbs:
		return p.WithCarbs(v)
	case FieldFat:
		return p.WithFat(v)
	case FieldFoodPreferences:
		return p.WithFoodPreferences(v)
	}
	return p
}

// Get returns the current text of field f.
func (p Preferences) Get(f Field) string {
	switch f {
	case FieldCalories:
		return p.Calories
	case FieldProtein:
		return p.Protein
	case FieldCarbs:
		return p.Carbs
	case FieldFat:
		return p.Fat
	case FieldFoodPreferences:
		return p.FoodPreferences
	}
	return ""
}
