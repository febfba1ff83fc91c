package config

// Config holds the configuration of the application.
// Use LoadConfig to create a new instance.
type Config struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend" json:"backend"`
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"  json:"server"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"     json:"log"`
	Viewer  ViewerConfig  `mapstructure:"viewer"  yaml:"viewer"  json:"viewer"`
	Export  ExportConfig  `mapstructure:"export"  yaml:"export"  json:"export"`
}

// BackendConfig locates the annotation backend. A request URL is built as
// Server + Prefix + URLMapping[action].
type BackendConfig struct {
	Server     string            `mapstructure:"server"      yaml:"server"      json:"server"      validate:"required,url"`
	Prefix     string            `mapstructure:"prefix"      yaml:"prefix"      json:"prefix"`
	URLMapping map[string]string `mapstructure:"url_mapping" yaml:"url_mapping" json:"url_mapping" validate:"required"`
	// SleepTime is the pause, in seconds, before resubmitting a request the backend
	// rejected with 503.
	SleepTime      int `mapstructure:"sleep_time"      yaml:"sleep_time"      json:"sleep_time"      validate:"gte=0"`
	BusyRetries    int `mapstructure:"busy_retries"    yaml:"busy_retries"    json:"-"               validate:"gte=0"`
	RetryMax       int `mapstructure:"retry_max"       yaml:"retry_max"       json:"-"               validate:"gte=0"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"-"               validate:"gt=0"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host" json:"-"`
	Port int    `mapstructure:"port" yaml:"port" json:"-" validate:"gt=0,lte=65535"`
	// MaxUploadMB caps the size of documents submitted through /api/v1/process.
	MaxUploadMB int `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"-" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"-"`
}

type ViewerConfig struct {
	// RenderScale is the zoom factor pages are rendered at in the browser.
	RenderScale float64 `mapstructure:"render_scale" yaml:"render_scale" json:"render_scale" validate:"gt=0"`
	// MissingLinkPolicy decides what happens to links whose target span cannot be found in
	// the whole response: "drop" skips them, "keep" lists them as unresolved rows.
	MissingLinkPolicy string `mapstructure:"missing_link_policy" yaml:"missing_link_policy" json:"missing_link_policy" validate:"oneof=drop keep"`
}

type ExportConfig struct {
	RDFBaseURI   string `mapstructure:"rdf_base_uri"  yaml:"rdf_base_uri"  json:"-" validate:"required"`
	RDFNamespace string `mapstructure:"rdf_namespace" yaml:"rdf_namespace" json:"-" validate:"required"`
}
