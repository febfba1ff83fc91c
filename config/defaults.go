package config

// Names of the backend actions looked up in BackendConfig.URLMapping.
const (
	ActionProcessPDF  = "processPDF"
	ActionAnnotations = "annotations"
	ActionDocument    = "document"
	ActionPing        = "ping"
)

const (
	MissingLinkDrop = "drop"
	MissingLinkKeep = "keep"
)

func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			Server: "http://localhost:8072",
			Prefix: "/service",
			URLMapping: normalizeMapping(map[string]string{
				ActionProcessPDF:  "/process/pdf",
				ActionAnnotations: "/annotation/{hash}",
				ActionDocument:    "/pdf/{hash}",
				ActionPing:        "/isalive",
			}),
			SleepTime:      5,
			BusyRetries:    3,
			RetryMax:       2,
			TimeoutSeconds: 120,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			MaxUploadMB: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
		Viewer: ViewerConfig{
			RenderScale:       1.5,
			MissingLinkPolicy: MissingLinkDrop,
		},
		Export: ExportConfig{
			RDFBaseURI:   "http://falcon.nims.go.jp/supercon/",
			RDFNamespace: "http://falcon.nims.go.jp/supercuration",
		},
	}
}

// Default returns a fully populated configuration. Tests and the offline CLI commands
// use it when no configuration file is given.
func Default() *Config {
	cfg := defaultConfig()
	return &cfg
}
