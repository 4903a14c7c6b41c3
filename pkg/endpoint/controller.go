package endpoint

//
// Controller configuration and shared state
//

import (
	"maps"
	"net/http"
	"sync"

	"github.com/apex/log"
	"github.com/endpointkit/endpoint/internal/model"
	"github.com/endpointkit/endpoint/internal/netprobe"
	"github.com/endpointkit/endpoint/internal/recorder"
	"github.com/endpointkit/endpoint/internal/runtimex"
)

// Config contains the configuration of a [*Controller]. All the fields
// are OPTIONAL; the zero value works with the defaults described below.
type Config struct {
	// DefaultServerBase is the base URL for descriptors without ServerBase.
	DefaultServerBase string

	// Transport sends requests. The default is [DefaultTransport].
	Transport Transport

	// Probe checks reachability before sending. The default inspects
	// the system's network interfaces.
	Probe Probe

	// Logger is the logger. The default is the apex/log log.Log.
	Logger model.Logger

	// Events receives notifications. The default discards them.
	Events EventSink

	// Dispatcher runs the completions of asynchronous loads. The
	// default is [MainQueue].
	Dispatcher Dispatcher

	// Diagnostics receives HTTP diagnostics. The default writes them
	// to Logger using Debug.
	Diagnostics DiagnosticSink

	// DecodeServerError decodes rejected bodies. The default
	// is [DecodeDefaultServerError].
	DecodeServerError ServerErrorDecoder

	// DebugAllHTTP emits a diagnostic for every response.
	DebugAllHTTP bool

	// MaxResponseSize is the diagnostic size threshold. The default
	// is [DefaultMaxResponseSize].
	MaxResponseSize int64

	// RecordingDir enables recording response bodies into this directory.
	RecordingDir string

	// StrictAssertions turns programmer errors (e.g., a descriptor that
	// does not build) into panics rather than warnings.
	StrictAssertions bool

	// ExtraHeaders contains the initial extra headers.
	ExtraHeaders map[string]string
}

// Controller loads [Descriptor] values. It is safe for concurrent use.
type Controller struct {
	debugAllHTTP      bool
	decodeServerError ServerErrorDecoder
	defaultServerBase string
	diagnostics       DiagnosticSink
	dispatcher        Dispatcher
	events            EventSink
	logger            model.Logger
	maxResponseSize   int64
	probe             Probe
	strictAssertions  bool
	transport         Transport

	mu           sync.Mutex
	extraHeaders map[string]string
	recorder     *recorder.Recorder
}

// NewController creates a [*Controller]. A nil config means the defaults.
func NewController(config *Config) *Controller {
	if config == nil {
		config = &Config{}
	}
	c := &Controller{
		debugAllHTTP:      config.DebugAllHTTP,
		decodeServerError: config.DecodeServerError,
		defaultServerBase: config.DefaultServerBase,
		diagnostics:       config.Diagnostics,
		dispatcher:        config.Dispatcher,
		events:            config.Events,
		logger:            config.Logger,
		maxResponseSize:   config.MaxResponseSize,
		probe:             config.Probe,
		strictAssertions:  config.StrictAssertions,
		transport:         config.Transport,
		extraHeaders:      map[string]string{},
	}
	if c.logger == nil {
		c.logger = log.Log
	}
	if c.transport == nil {
		c.transport = DefaultTransport()
	}
	if c.probe == nil {
		c.probe = &netprobe.Probe{}
	}
	if c.events == nil {
		c.events = DiscardEvents
	}
	if c.dispatcher == nil {
		c.dispatcher = MainQueue()
	}
	if c.diagnostics == nil {
		c.diagnostics = &LoggerDiagnosticSink{Logger: c.logger}
	}
	if c.decodeServerError == nil {
		c.decodeServerError = DecodeDefaultServerError
	}
	if c.maxResponseSize <= 0 {
		c.maxResponseSize = DefaultMaxResponseSize
	}
	for key, value := range config.ExtraHeaders {
		c.SetExtraHeader(key, value)
	}
	if config.RecordingDir != "" {
		if err := c.EnableRecording(config.RecordingDir); err != nil {
			c.logger.Warnf("endpoint: cannot enable recording: %s", err.Error())
		}
	}
	return c
}

// AddBearerToken sets the Authorization header sent with every request.
func (c *Controller) AddBearerToken(token string) {
	c.logger.Debug("endpoint: setting the bearer token")
	c.SetExtraHeader("Authorization", "Bearer "+token)
}

// RemoveAuthToken removes the Authorization header set by AddBearerToken.
func (c *Controller) RemoveAuthToken() {
	c.logger.Debug("endpoint: removing the bearer token")
	c.SetExtraHeader("Authorization", "")
}

// SetExtraHeader sets a header sent with every request. An empty
// value removes the header.
func (c *Controller) SetExtraHeader(key, value string) {
	key = http.CanonicalHeaderKey(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		delete(c.extraHeaders, key)
		return
	}
	c.extraHeaders[key] = value
}

// ExtraHeaders returns a copy of the headers sent with every request.
func (c *Controller) ExtraHeaders() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.extraHeaders)
}

// EnableRecording starts saving response bodies into dir, which we
// create if needed. Bodies are recorded before validation, so rejected
// responses are saved too.
func (c *Controller) EnableRecording(dir string) error {
	rec, err := recorder.New(dir)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.recorder = rec
	c.mu.Unlock()
	c.logger.Infof("endpoint: recording responses into %s", dir)
	return nil
}

// DisableRecording stops saving response bodies.
func (c *Controller) DisableRecording() {
	c.mu.Lock()
	c.recorder = nil
	c.mu.Unlock()
}

func (c *Controller) currentRecorder() *recorder.Recorder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recorder
}

// validator returns the [*Validator] for a descriptor's acceptance rules.
func (c *Controller) validator(mimeTypes []string, statusCodes []int) *Validator {
	return &Validator{
		AcceptedMimeTypes:   mimeTypes,
		AcceptedStatusCodes: statusCodes,
		DecodeServerError:   c.decodeServerError,
		DebugAllHTTP:        c.debugAllHTTP,
		MaxResponseSize:     c.maxResponseSize,
		Events:              c.events,
		Diagnostics:         c.diagnostics,
	}
}

// assertionFailed reports a programmer error.
func (c *Controller) assertionFailed(message string, err error) {
	if c.strictAssertions {
		runtimex.PanicOnError(err, message)
	}
	c.logger.Warnf("endpoint: %s: %s", message, err.Error())
}

// BuildRequest builds the request that [Load] would send for d, using
// the controller's extra headers and default server base.
func BuildRequest[P any](c *Controller, d *Descriptor[P], page int) (*WireRequest, error) {
	return d.BuildRequest(page, c.ExtraHeaders(), c.defaultServerBase)
}
