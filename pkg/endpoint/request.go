package endpoint

//
// Turning a Descriptor into a WireRequest
//

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/endpointkit/endpoint/internal/model"
	"github.com/endpointkit/endpoint/internal/percent"
	"golang.org/x/net/http/httpguts"
)

// ErrNoServerBase indicates that neither the descriptor nor the
// controller provide a server base URL.
var ErrNoServerBase = errors.New("endpoint: no server base URL")

// ErrInvalidServerBase indicates that the server base URL lacks either
// the scheme or the host.
var ErrInvalidServerBase = errors.New("endpoint: invalid server base URL")

// ErrInvalidHeader indicates that a header name or value cannot be sent.
var ErrInvalidHeader = errors.New("endpoint: invalid header")

// ErrQueryMismatch indicates that the encoded query does not parse back
// to the parameters we wanted to send.
var ErrQueryMismatch = errors.New("endpoint: encoded query does not round trip")

// Content types we infer from the generated body.
const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// encodeParams returns "k1=v1&k2=v2" with sorted and escaped keys and values.
func encodeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, percent.Escape(key)+"="+percent.Escape(params[key]))
	}
	return strings.Join(parts, "&")
}

// joinURLPath appends resourcePath to urlPath.
func joinURLPath(urlPath, resourcePath string) string {
	if resourcePath == "" {
		if urlPath == "" {
			return "/"
		}
		return urlPath
	}
	if !strings.HasSuffix(urlPath, "/") {
		urlPath += "/"
	}
	resourcePath = strings.TrimPrefix(resourcePath, "/")
	return urlPath + resourcePath
}

// URL returns the URL for the given page. The defaultServerBase is used
// when d.ServerBase is empty.
func (d *Descriptor[P]) URL(page int, defaultServerBase string) (*url.URL, error) {
	base := d.ServerBase
	if base == "" {
		base = defaultServerBase
	}
	if base == "" {
		return nil, ErrNoServerBase
	}
	URL, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if URL.Scheme == "" || URL.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidServerBase, base)
	}
	for _, segment := range []string{d.PathPrefix, d.ObjectID, d.PathSuffix} {
		if segment != "" {
			URL.Path = joinURLPath(URL.Path, segment)
		}
	}
	URL.RawPath = ""
	URL.Fragment, URL.RawFragment = "", ""
	params := d.QueryParameters(page)
	URL.RawQuery = encodeParams(params)
	URL.ForceQuery = false
	if err := checkQuery(URL.RawQuery, params); err != nil {
		return nil, err
	}
	return URL, nil
}

// checkQuery ensures that rawQuery decodes back to params.
func checkQuery(rawQuery string, params map[string]string) error {
	parsed, err := url.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrQueryMismatch, err.Error())
	}
	if len(parsed) != len(params) {
		return ErrQueryMismatch
	}
	for key, value := range params {
		if parsed.Get(key) != value {
			return fmt.Errorf("%w: %s", ErrQueryMismatch, key)
		}
	}
	return nil
}

// body returns the body to send and the content type it implies.
func (d *Descriptor[P]) body() ([]byte, string, error) {
	if d.Body != nil {
		return d.Body, "", nil
	}
	if form := d.FormBody(); form != nil {
		return form, contentTypeForm, nil
	}
	data, err := d.JSONBody()
	if err != nil {
		return nil, "", err
	}
	if data != nil {
		return data, contentTypeJSON, nil
	}
	return nil, "", nil
}

// setHeader sets a header after checking that we can send it.
func setHeader(header http.Header, key, value string) error {
	if !httpguts.ValidHeaderFieldName(key) || !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("%w: %q", ErrInvalidHeader, key)
	}
	header.Set(key, value)
	return nil
}

// basicAuth returns the value of the Authorization header for basic auth.
func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// BuildRequest builds the [*WireRequest] for the given page.
//
// Headers are layered, each layer overriding the previous one: the
// library defaults, extraHeaders, CustomHeaders, the content type, and
// finally basic authentication, which we only add when there is no
// Authorization header yet, so that a bearer token wins.
//
// Failures are reported as a [*RequestError] of kind [RequestBuildFailed].
func (d *Descriptor[P]) BuildRequest(
	page int, extraHeaders map[string]string, defaultServerBase string) (*WireRequest, error) {
	wr, err := d.buildRequest(page, extraHeaders, defaultServerBase)
	if err != nil {
		return nil, newRequestError(RequestBuildFailed, err)
	}
	return wr, nil
}

func (d *Descriptor[P]) buildRequest(
	page int, extraHeaders map[string]string, defaultServerBase string) (*WireRequest, error) {
	URL, err := d.URL(page, defaultServerBase)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Accept-Encoding", model.HTTPHeaderAcceptEncoding)
	for _, layer := range []map[string]string{extraHeaders, d.CustomHeaders} {
		for key, value := range layer {
			if err := setHeader(header, key, value); err != nil {
				return nil, err
			}
		}
	}
	method := d.EffectiveMethod()
	body, inferred, err := d.body()
	if err != nil {
		return nil, err
	}
	switch {
	case d.ContentType != "":
		if err := setHeader(header, "Content-Type", d.ContentType); err != nil {
			return nil, err
		}
	case inferred != "" && method.allowsBody():
		header.Set("Content-Type", inferred)
	}
	if d.Username != "" && header.Get("Authorization") == "" {
		header.Set("Authorization", basicAuth(d.Username, d.Password))
	}
	wr := &WireRequest{
		Method: string(method),
		URL:    URL,
		Header: header,
		Body:   body,
	}
	return wr, nil
}
