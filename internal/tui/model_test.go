package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"platepal/internal/app"
	"platepal/internal/mealplan"
	"platepal/internal/preferences"

	tea "github.com/charmbracelet/bubbletea"
)

type stubClient struct {
	healthErr error
	result    *mealplan.Result
	requests  []preferences.MealPlanRequest
}

func (c *stubClient) CheckHealth(ctx context.Context) error { return c.healthErr }

func (c *stubClient) GenerateMealPlan(ctx context.Context, req preferences.MealPlanRequest) (*mealplan.Result, error) {
	c.requests = append(c.requests, req)
	return c.result, nil
}

func (c *stubClient) QuickSuggest(ctx context.Context, message string) (mealplan.SuggestionList, error) {
	return mealplan.SuggestionList{"Ask for extra salsa"}, nil
}

func started(t *testing.T, client *stubClient) Model {
	t.Helper()
	m := New(app.NewSession(client, nil, nil))
	m = step(t, m, stateMsg(m.session.Start(context.Background())))
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingUpdatesPreferences(t *testing.T) {
	m := started(t, &stubClient{})

	m = step(t, m, key("5"))
	if got := m.session.Snapshot().Preferences.Calories; got != "20005" {
		t.Errorf("Expected calories '20005', got %q", got)
	}

	m = step(t, m, key("shift+tab"))
	if m.focus != m.buttonIndex() {
		t.Errorf("Expected focus to wrap to the button, got %d", m.focus)
	}
}

func TestToggleRestriction(t *testing.T) {
	m := started(t, &stubClient{})
	for i := 0; i < len(m.inputs)+1; i++ {
		m = step(t, m, key("tab"))
	}

	m = step(t, m, key(" "))
	if !m.session.Snapshot().Preferences.Restrictions.Vegan {
		t.Fatal("Expected vegan to be toggled on")
	}
	if !strings.Contains(m.View(), "[x] Vegan") {
		t.Errorf("Expected a checked vegan box in:\n%s", m.View())
	}
}

func TestGenerate(t *testing.T) {
	client := &stubClient{result: &mealplan.Result{
		MealPlan: mealplan.MealPlan{Breakfast: []mealplan.MealItem{{Item: "Oatmeal", DiningHall: "Turner Place", Calories: "310"}}},
		Totals:   mealplan.Totals{Calories: "310"},
	}}
	m := started(t, client)
	m = step(t, m, key("shift+tab"))

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected a generate command")
	}
	if !strings.Contains(m.View(), "[ Generating... ]") {
		t.Error("Expected the button to show progress")
	}

	// A second press while loading does nothing.
	if _, again := m.Update(key("enter")); again != nil {
		t.Error("Expected no command while loading")
	}

	m = step(t, m, cmd())
	if len(client.requests) != 1 {
		t.Fatalf("Expected one request, got %d", len(client.requests))
	}
	view := m.View()
	if !strings.Contains(view, "Oatmeal") || !strings.Contains(view, "[ Generate Meal Plan ]") {
		t.Errorf("Expected the plan in:\n%s", view)
	}
}

type blockingSuggester struct {
	release chan struct{}
}

func (b *blockingSuggester) QuickSuggest(ctx context.Context, message string) (mealplan.SuggestionList, error) {
	<-b.release
	return mealplan.SuggestionList{"Try the curry"}, nil
}

func TestGenerateShowsPlanBeforeSuggestions(t *testing.T) {
	client := &stubClient{result: &mealplan.Result{
		MealPlan: mealplan.MealPlan{Lunch: []mealplan.MealItem{{Item: "Burrito Bowl"}}},
	}}
	suggester := &blockingSuggester{release: make(chan struct{})}
	s := app.NewSession(client, suggester, nil)
	s.Update(func(p preferences.Preferences) preferences.Preferences { return p.WithFoodPreferences("spicy") })

	m := New(s)
	m = step(t, m, stateMsg(s.Start(context.Background())))
	m = step(t, m, key("shift+tab"))
	_, cmd := m.Update(key("enter"))

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(2 * time.Second):
		close(suggester.release)
		t.Fatal("Generate command waited for the suggestions")
	}

	next, follow := m.Update(msg)
	m = next.(Model)
	view := m.View()
	if !strings.Contains(view, "Burrito Bowl") || !strings.Contains(view, "[ Generate Meal Plan ]") {
		t.Errorf("Expected the plan with the button re-enabled in:\n%s", view)
	}
	if strings.Contains(view, "Try the curry") {
		t.Error("Suggestions shown before they arrived")
	}
	if follow == nil {
		t.Fatal("Expected a command that waits for the suggestions")
	}

	close(suggester.release)
	m = step(t, m, follow())
	if !strings.Contains(m.View(), "Try the curry") {
		t.Errorf("Expected the suggestions in:\n%s", m.View())
	}
}

func TestGenerateAlert(t *testing.T) {
	m := started(t, &stubClient{})
	m.inputs[3].SetValue("")
	m.state = m.session.Update(func(p preferences.Preferences) preferences.Preferences { return p.WithFat("") })
	m = step(t, m, key("shift+tab"))

	_, cmd := m.Update(key("enter"))
	m = step(t, m, cmd())
	if m.state.Alert == nil || !strings.Contains(m.View(), "Macro percentages must add up to approximately 100%") {
		t.Fatalf("Expected the macro alert in:\n%s", m.View())
	}

	m = step(t, m, key("esc"))
	if m.state.Alert != nil {
		t.Error("Expected esc to dismiss the alert")
	}
}

func TestStatusLine(t *testing.T) {
	m := New(app.NewSession(&stubClient{}, nil, nil))
	if !strings.Contains(m.View(), "server: Checking...") {
		t.Error("Expected checking status before the probe")
	}
	m = step(t, m, m.Init()().(tea.BatchMsg)[1]())
	if !strings.Contains(m.View(), "server: Connected") {
		t.Error("Expected connected status after the probe")
	}
}
