package app

import (
	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/pkg/backend"
	"github.com/supercuration/supercon/pkg/viewer"
)

// AppState holds the state of the application.
// Use NewAppState to create a new instance.
type AppState struct {
	Config  *config.Config
	Backend *backend.Client
	Viewer  *viewer.Viewer
}

// NewAppState wires the backend client and the viewer from cfg.
func NewAppState(cfg *config.Config) *AppState {
	client := backend.NewClient(cfg.Backend, nil)
	return &AppState{
		Config:  cfg,
		Backend: client,
		Viewer:  viewer.New(client, viewer.OptionsFromConfig(cfg)),
	}
}
