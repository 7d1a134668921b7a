package app

import (
	"platepal/internal/mealplan"
	"platepal/internal/preferences"
)

// Status is the result of the startup health probe.
type Status string

const (
	StatusChecking  Status = "checking"
	StatusConnected Status = "connected"
	StatusError     Status = "error"
)

// Label is the status as shown in a header.
func (s Status) Label() string {
	switch s {
	case StatusConnected:
		return "Connected"
	case StatusChecking:
		return "Checking..."
	}
	return "Disconnected"
}

// Alert is a message that interrupts the user.
type Alert struct {
	Title   string
	Message string
}

var (
	alertInvalidMacros = Alert{Title: "Error", Message: "Macro percentages must add up to approximately 100%"}
	alertNotConnected  = Alert{Title: "Connection Error", Message: "Cannot connect to nutrition server. Please check if the server is running."}
)

// State is everything one user sees on the screen. It is a value; the With*
// functions return modified copies.
type State struct {
	Preferences preferences.Preferences
	Result      *mealplan.Result
	Suggestions mealplan.SuggestionList
	Status      Status
	Loading     bool
	Alert       *Alert
}

// NewState returns the state at startup, before the health probe finishes.
func NewState() State {
	return State{
		Preferences: preferences.Default(),
		Status:      StatusChecking,
	}
}

func (s State) WithPreferences(p preferences.Preferences) State {
	s.Preferences = p
	return s
}

func (s State) WithStatus(status Status) State {
	s.Status = status
	return s
}

// WithResult replaces any earlier result.
func (s State) WithResult(r *mealplan.Result) State {
	s.Result = r
	return s
}

func (s State) WithSuggestions(list mealplan.SuggestionList) State {
	s.Suggestions = list
	return s
}

func (s State) WithLoading(loading bool) State {
	s.Loading = loading
	return s
}

func (s State) WithAlert(a Alert) State {
	s.Alert = &a
	return s
}

func (s State) ClearAlert() State {
	s.Alert = nil
	return s
}
