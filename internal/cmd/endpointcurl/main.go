// Command endpointcurl loads a single REST endpoint and prints the
// validated response body.
//
// Usage:
//
//	endpointcurl --server https://api.example.com/ --path users --object 4322 -v
//
// With --batch, each non-empty line of the given file not starting with
// '#' contains the shell-quoted request flags of one load, e.g.
//
//	--path users --object 4322
//	-X POST --path users --json 'name=Mr Robot'
//
// Lines run in order using the controller configured on the command line
// and the first failure stops the batch.
package main

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/endpointkit/endpoint/internal/log/handlers/cli"
	"github.com/endpointkit/endpoint/internal/netprobe"
	"github.com/endpointkit/endpoint/pkg/endpoint"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options contains the command line options.
type options struct {
	accept      []string
	batch       string
	bearer      string
	contentType string
	data        string
	form        map[string]string
	headers     map[string]string
	json        map[string]string
	method      string
	object      string
	output      string
	page        int
	password    string
	path        string
	query       map[string]string
	record      string
	server      string
	settings    string
	status      []int
	suffix      string
	username    string
	verbose     bool
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "endpointcurl",
		Short:        "Loads a REST endpoint and prints the validated body",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	registerFlags(cmd.Flags(), opts)
	cmd.Flags().StringVar(&opts.batch, "batch", "", "File containing one set of request flags per line")
	cmd.Flags().StringVar(&opts.bearer, "bearer", "", "Bearer token to send")
	cmd.Flags().StringVar(&opts.record, "record", "", "Directory where to record response bodies")
	cmd.Flags().StringVar(&opts.server, "server", "", "Server base URL")
	cmd.Flags().StringVar(&opts.settings, "settings", "", "Settings file (JSON with comments)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Emit debug messages and HTTP diagnostics")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// registerFlags registers the flags describing a single request.
func registerFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringSliceVar(&opts.accept, "accept", []string{"*/*"}, "Accepted response media types")
	flags.StringVar(&opts.contentType, "content-type", "", "Explicit request Content-Type")
	flags.StringVar(&opts.data, "data", "", "Raw request body")
	flags.StringToStringVar(&opts.form, "form", nil, "Form parameters (key=value)")
	flags.StringToStringVarP(&opts.headers, "header", "H", nil, "Extra headers (key=value)")
	flags.StringToStringVar(&opts.json, "json", nil, "JSON string parameters (key=value)")
	flags.StringVarP(&opts.method, "method", "X", "GET", "HTTP method")
	flags.StringVar(&opts.object, "object", "", "Object ID path segment")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the body to this file instead of stdout")
	flags.IntVar(&opts.page, "page", endpoint.DefaultPage, "Page to load")
	flags.StringVar(&opts.password, "password", "", "Basic authentication password")
	flags.StringVar(&opts.path, "path", "", "Path prefix")
	flags.StringToStringVarP(&opts.query, "query", "q", nil, "Query parameters (key=value)")
	flags.IntSliceVar(&opts.status, "status", nil, "Accepted status codes (default 200-299)")
	flags.StringVar(&opts.suffix, "suffix", "", "Path suffix following the object ID")
	flags.StringVarP(&opts.username, "user", "u", "", "Basic authentication username")
}

// readBatch parses the request lines of the batch file at path.
func readBatch(path string) ([]*options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []*options
	for idx, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, idx+1, err)
		}
		opts := &options{}
		flags := pflag.NewFlagSet("batch", pflag.ContinueOnError)
		registerFlags(flags, opts)
		if err := flags.Parse(args); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, idx+1, err)
		}
		if flags.NArg() > 0 {
			return nil, fmt.Errorf("%s:%d: unexpected arguments: %v", path, idx+1, flags.Args())
		}
		out = append(out, opts)
	}
	return out, nil
}

// run loads the endpoint described by opts and prints the body.
func run(ctx context.Context, opts *options) error {
	log.SetHandler(cli.Default)
	log.SetLevel(log.InfoLevel)
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	config, timeout, err := newConfig(opts)
	if err != nil {
		return err
	}
	controller := endpoint.NewController(config)
	if opts.bearer != "" {
		controller.AddBearerToken(opts.bearer)
	}

	requests := []*options{opts}
	if opts.batch != "" {
		if requests, err = readBatch(opts.batch); err != nil {
			return err
		}
	}
	for _, request := range requests {
		if err := load(ctx, controller, request, timeout); err != nil {
			log.WithError(err).Warn("endpointcurl: load failed")
			return err
		}
	}
	return nil
}

// load loads a single request and either prints or saves the body. A
// positive timeout bounds the load.
func load(ctx context.Context, controller *endpoint.Controller, opts *options, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if opts.output != "" {
		destination, err := endpoint.Fetch(ctx, controller, newDownloadDescriptor(opts))
		if err != nil {
			return err
		}
		log.Infof("endpointcurl: saved response body into %s", destination)
		return nil
	}
	body, err := endpoint.Fetch(ctx, controller, newDescriptor(opts), endpoint.WithPage(opts.page))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(body)
	return err
}

// newConfig creates the controller config from the settings file, if
// any, and the command line options, which take precedence. It also
// returns the timeout configured by the settings file.
func newConfig(opts *options) (*endpoint.Config, time.Duration, error) {
	config := &endpoint.Config{
		Logger:      log.Log,
		Diagnostics: &endpoint.ApexDiagnosticSink{Logger: log.Log},
		Dispatcher:  endpoint.InlineDispatcher{},
		Events: endpoint.EventSinkFunc(func(n *endpoint.Notification) {
			log.Infof("endpointcurl: event: %s", n.Event)
		}),
		ExtraHeaders: opts.headers,
	}
	var timeout time.Duration
	if opts.settings != "" {
		settings, err := endpoint.ReadSettings(opts.settings)
		if err != nil {
			return nil, 0, err
		}
		settings.Apply(config)
		timeout, _ = settings.TimeoutDuration() // validated when reading
	}
	if opts.server != "" {
		config.DefaultServerBase = opts.server
	}
	if opts.record != "" {
		config.RecordingDir = opts.record
	}
	if opts.verbose {
		config.DebugAllHTTP = true
	}
	if isLoopback(config.DefaultServerBase) {
		config.Probe = netprobe.Always(true)
	}
	return config, timeout, nil
}

// isLoopback returns whether serverBase points to the local host, which
// is reachable even without a usable network interface.
func isLoopback(serverBase string) bool {
	URL, err := url.Parse(serverBase)
	if err != nil {
		return false
	}
	host := URL.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// newDescriptor creates the descriptor for the command line options.
func newDescriptor(opts *options) *endpoint.Descriptor[[]byte] {
	d := endpoint.NewDescriptor[[]byte]("", opts.path)
	configure(d, opts)
	d.Decode = endpoint.DecodeRaw
	return d
}

// newDownloadDescriptor is like newDescriptor but saves the body into
// the output file.
func newDownloadDescriptor(opts *options) *endpoint.Descriptor[string] {
	d := endpoint.NewFileDownloadDescriptor("", opts.path, opts.output)
	configure(d, opts)
	return d
}

// configure copies the request options into d.
func configure[P any](d *endpoint.Descriptor[P], opts *options) {
	d.ObjectID = opts.object
	d.PathSuffix = opts.suffix
	d.Method = endpoint.Method(strings.ToUpper(opts.method))
	d.QueryParams = opts.query
	d.FormParams = opts.form
	if len(opts.json) > 0 {
		d.JSONParams = map[string]any{}
		for key, value := range opts.json {
			d.JSONParams[key] = value
		}
	}
	if opts.data != "" {
		d.Body = []byte(opts.data)
	}
	d.AcceptedMimeTypes = opts.accept
	if len(opts.status) > 0 {
		d.AcceptedStatusCodes = endpoint.StatusCodes(opts.status...)
	}
	d.ContentType = opts.contentType
	d.Username = opts.username
	d.Password = opts.password
	if len(opts.headers) > 0 {
		d.CustomHeaders = opts.headers
	}
}
