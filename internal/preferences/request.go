package preferences

import "strings"

// MacroFocus is the requested macro split in percent. A nil value is sent as
// null and means the text could not be parsed.
type MacroFocus struct {
	Protein *int `json:"protein"`
	Carbs   *int `json:"carbs"`
	Fat     *int `json:"fat"`
}

// MealPlanRequest is the body of a meal-plan generation call.
type MealPlanRequest struct {
	Calories            *int       `json:"calories"`
	MacroFocus          MacroFocus `json:"macro_focus"`
	DietaryRestrictions []string   `json:"dietary_restrictions"`
	FoodPreferences     string     `json:"food_preferences"`
}

// BuildRequest maps the form to the wire request. Macros are assumed to have
// passed ValidateMacros already and are not checked again.
func BuildRequest(p Preferences) MealPlanRequest {
	return MealPlanRequest{
		Calories: intPtr(p.Calories),
		MacroFocus: MacroFocus{
			Protein: intPtr(p.Protein),
			Carbs:   intPtr(p.Carbs),
			Fat:     intPtr(p.Fat),
		},
		DietaryRestrictions: RestrictionList(p.Restrictions),
		FoodPreferences:     p.FoodPreferences,
	}
}

// RestrictionList returns the kebab-case identifiers of the set flags in
// canonical order. The result is never nil.
func RestrictionList(d DietaryRestrictions) []string {
	list := []string{}
	for _, r := range Restrictions {
		if d.Get(r) {
			list = append(list, KebabCase(string(r)))
		}
	}
	return list
}

// KebabCase rewrites a camelCase identifier: a hyphen goes in front of every
// internal uppercase letter and the result is lowercased ("glutenFree" →
// "gluten-free").
func KebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func intPtr(s string) *int {
	n, ok := ParseInt(s)
	if !ok {
		return nil
	}
	return &n
}
