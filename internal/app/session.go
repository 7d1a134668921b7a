package app

import (
	"context"
	"errors"
	"sync"

	"platepal/internal/apiclient"
	"platepal/internal/logger"
	"platepal/internal/mealplan"
	"platepal/internal/preferences"

	"go.uber.org/zap"
)

var (
	// ErrNotConnected is returned by Generate while the server is not known to be reachable.
	ErrNotConnected = errors.New("nutrition server not connected")
	// ErrBusy is returned by Generate while another generate call is in flight.
	ErrBusy = errors.New("meal plan generation already in progress")
)

// Suggester produces quick suggestions for free text.
type Suggester interface {
	QuickSuggest(ctx context.Context, message string) (mealplan.SuggestionList, error)
}

// Session owns one user's State and runs the health, generate and suggest
// workflows against it. It is safe for concurrent use.
type Session struct {
	client    apiclient.Client
	suggester Suggester
	onChange  func(State)

	mu    sync.Mutex
	state State

	startOnce sync.Once
	pending   sync.WaitGroup
}

// NewSession creates a session in its startup state. A nil suggester falls
// back to the API client; onChange, when set, is called after every change.
func NewSession(client apiclient.Client, suggester Suggester, onChange func(State)) *Session {
	if suggester == nil {
		suggester = client
	}
	return &Session{
		client:    client,
		suggester: suggester,
		onChange:  onChange,
		state:     NewState(),
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) apply(fn func(State) State) State {
	s.mu.Lock()
	s.state = fn(s.state)
	st := s.state
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(st)
	}
	return st
}

// Start runs the health probe. Only the first call does anything; the
// status is never polled again.
func (s *Session) Start(ctx context.Context) State {
	s.startOnce.Do(func() {
		status := StatusConnected
		if err := s.client.CheckHealth(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			status = StatusError
		}
		s.apply(func(st State) State { return st.WithStatus(status) })
	})
	return s.Snapshot()
}

// Update edits the preferences.
func (s *Session) Update(fn func(preferences.Preferences) preferences.Preferences) State {
	return s.apply(func(st State) State { return st.WithPreferences(fn(st.Preferences)) })
}

// DismissAlert clears the current alert.
func (s *Session) DismissAlert() State {
	return s.apply(State.ClearAlert)
}

// Generate requests a meal plan for the current preferences.
//
// While a call is in flight further calls return ErrBusy and do nothing.
// Invalid macros and a missing connection raise an alert and return
// preferences.ErrInvalidMacros or ErrNotConnected without touching the
// network. A failed call raises an alert and keeps the previous result. A
// successful call replaces the result and, when the user typed food
// preferences, fetches quick suggestions in the background.
func (s *Session) Generate(ctx context.Context) (State, error) {
	s.mu.Lock()
	st := s.state
	var gateErr error
	switch {
	case st.Loading:
		s.mu.Unlock()
		return st, ErrBusy
	case !preferences.ValidateMacros(st.Preferences):
		gateErr = preferences.ErrInvalidMacros
		s.state = st.WithAlert(alertInvalidMacros)
	case st.Status != StatusConnected:
		gateErr = ErrNotConnected
		s.state = st.WithAlert(alertNotConnected)
	default:
		s.state = st.WithLoading(true).ClearAlert()
	}
	st = s.state
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(st)
	}
	if gateErr != nil {
		return st, gateErr
	}

	prefs := st.Preferences
	result, err := s.client.GenerateMealPlan(ctx, preferences.BuildRequest(prefs))
	if err != nil {
		logger.Error("meal plan generation failed", zap.Error(err))
		alert := Alert{Title: "Error", Message: err.Error()}
		if alert.Message == "" {
			alert.Message = "An error occurred"
		}
		return s.apply(func(st State) State { return st.WithLoading(false).WithAlert(alert) }), err
	}

	st = s.apply(func(st State) State { return st.WithLoading(false).WithResult(result) })

	if prefs.FoodPreferences != "" {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			s.Suggest(context.WithoutCancel(ctx), prefs.FoodPreferences)
		}()
	}
	return st, nil
}

// Suggest fetches quick suggestions. Failures are logged and otherwise
// ignored: the previous suggestions, the status and the alert stay as they are.
func (s *Session) Suggest(ctx context.Context, message string) State {
	list, err := s.suggester.QuickSuggest(ctx, message)
	if err != nil {
		logger.Warn("could not get suggestions", zap.Error(err))
		return s.Snapshot()
	}
	return s.apply(func(st State) State { return st.WithSuggestions(list) })
}

// Wait blocks until background suggestion calls have finished.
func (s *Session) Wait() {
	s.pending.Wait()
}
