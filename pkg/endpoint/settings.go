package endpoint

//
// Settings files
//

import (
	"encoding/json"
	"net/url"
	"os"
	"time"

	"github.com/endpointkit/endpoint/internal/model"
	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

// Settings is the on-disk configuration of a [*Controller]. Settings
// files are JSON with comments and trailing commas.
type Settings struct {
	// Comment is ignored.
	Comment string `json:"_"`

	DefaultServerBase string            `json:"default_server_base"`
	DebugAllHTTP      bool              `json:"debug_all_http"`
	MaxResponseSize   int64             `json:"max_response_size"`
	RecordingDir      string            `json:"recording_dir"`
	StrictAssertions  bool              `json:"strict_assertions"`
	ExtraHeaders      map[string]string `json:"extra_headers"`
	UserAgent         string            `json:"user_agent"`

	// Timeout is a duration string (e.g., "30s") bounding each load.
	Timeout string `json:"timeout"`
}

// ReadSettings reads the settings from the given path.
func ReadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSettings(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}
	return s, nil
}

// ParseSettings parses, defaults, and validates settings.
func ParseSettings(data []byte) (*Settings, error) {
	data, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.Wrap(err, "standardizing hujson")
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing json")
	}
	s.Default()
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating")
	}
	return &s, nil
}

// Default fills the unset fields.
func (s *Settings) Default() {
	if s.MaxResponseSize == 0 {
		s.MaxResponseSize = DefaultMaxResponseSize
	}
	if s.UserAgent == "" {
		s.UserAgent = model.HTTPHeaderUserAgent
	}
}

// Validate returns an error when the settings are not usable.
func (s *Settings) Validate() error {
	if s.DefaultServerBase != "" {
		URL, err := url.Parse(s.DefaultServerBase)
		if err != nil {
			return errors.Wrap(err, "default_server_base")
		}
		if URL.Scheme == "" || URL.Host == "" {
			return errors.Errorf("default_server_base: missing scheme or host: %s", s.DefaultServerBase)
		}
	}
	if s.MaxResponseSize < 0 {
		return errors.New("max_response_size: must not be negative")
	}
	if _, err := s.TimeoutDuration(); err != nil {
		return errors.Wrap(err, "timeout")
	}
	return nil
}

// TimeoutDuration returns the parsed timeout or zero when unset.
func (s *Settings) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Timeout)
}

// Apply copies the settings into config. Extra headers in config win
// over the ones in the settings.
func (s *Settings) Apply(config *Config) {
	config.DefaultServerBase = s.DefaultServerBase
	config.DebugAllHTTP = s.DebugAllHTTP
	config.MaxResponseSize = s.MaxResponseSize
	config.RecordingDir = s.RecordingDir
	config.StrictAssertions = s.StrictAssertions
	headers := map[string]string{}
	if s.UserAgent != "" {
		headers["User-Agent"] = s.UserAgent
	}
	for key, value := range s.ExtraHeaders {
		headers[key] = value
	}
	for key, value := range config.ExtraHeaders {
		headers[key] = value
	}
	config.ExtraHeaders = headers
}
