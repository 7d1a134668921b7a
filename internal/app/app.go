package app

import (
	"platepal/internal/apiclient"
	"platepal/internal/config"
)

// App holds the application's dependencies.
type App struct {
	client    apiclient.Client
	suggester Suggester
	cfg       *config.Config
}

// NewApp creates and initializes a new App instance. suggester may be nil,
// in which case quick suggestions come from the API.
func NewApp(client apiclient.Client, suggester Suggester, cfg *config.Config) *App {
	if suggester == nil {
		suggester = client
	}
	return &App{
		client:    client,
		suggester: suggester,
		cfg:       cfg,
	}
}

// Client returns the API client.
func (a *App) Client() apiclient.Client {
	return a.client
}

// Suggester returns the configured suggestion source.
func (a *App) Suggester() Suggester {
	return a.suggester
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// NewSession starts a fresh session for one user.
func (a *App) NewSession(onChange func(State)) *Session {
	return NewSession(a.client, a.suggester, onChange)
}
