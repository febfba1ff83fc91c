package apihandlers

import (
	"net/http"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/pkg/app"
	"github.com/supercuration/supercon/pkg/server/handlertools"
)

// ClientConfig is the part of the configuration the browser needs to talk to the
// annotation backend and lay pages out.
type ClientConfig struct {
	Backend config.BackendConfig `json:"backend"`
	Viewer  config.ViewerConfig  `json:"viewer"`
	Version string               `json:"version"`
}

// GetConfigHandler godoc
//
//	@Summary		Returns the client configuration
//	@Description	backend location, url mapping and viewer settings
//	@Tags			config
//	@Produce		json
//	@Success		200	{object}	ClientConfig
//	@Router			/config [get]
func GetConfigHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := ClientConfig{
			Backend: appState.Config.Backend,
			Viewer:  appState.Config.Viewer,
			Version: config.VersionString,
		}
		if err := handlertools.EncodeJSON(w, cfg); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
