package endpoint

//
// Declarative description of a REST call
//

import (
	"bytes"
	"encoding/json"
	"maps"
	"reflect"
	"slices"
)

// DefaultMimeType is the media type accepted when a [Descriptor] does
// not list any.
const DefaultMimeType = "application/json"

// DecodeFunc decodes a validated response body into a payload.
type DecodeFunc[P any] func(data []byte) (P, error)

// Descriptor describes a single REST call returning a payload of type P.
//
// The zero value of every OPTIONAL field selects a default, so you can
// either use [NewDescriptor] or a struct literal. Once a descriptor has
// been passed to [Load], you MUST NOT modify it; use [Descriptor.Clone]
// to derive variants.
type Descriptor[P any] struct {
	// ServerBase is the OPTIONAL base URL (e.g., "https://api.example.com/").
	// When empty, we use the controller's default server base.
	ServerBase string

	// PathPrefix is the OPTIONAL first path segment group (e.g., "/api/v1.0").
	PathPrefix string

	// ObjectID is the OPTIONAL path segment following PathPrefix.
	ObjectID string

	// PathSuffix is the OPTIONAL path segment following ObjectID.
	PathSuffix string

	// Method is the OPTIONAL HTTP method. The default is [MethodGet].
	Method Method

	// QueryParams contains OPTIONAL query parameters. They override
	// paging parameters with the same key.
	QueryParams map[string]string

	// FormParams contains OPTIONAL form parameters sent as an
	// application/x-www-form-urlencoded body by POST and PATCH.
	FormParams map[string]string

	// JSONParams contains OPTIONAL parameters sent as a JSON object
	// body by POST and PATCH when there are no FormParams.
	JSONParams map[string]any

	// Body is the OPTIONAL raw body. When not nil, it takes precedence
	// over FormParams and JSONParams, regardless of the method.
	Body []byte

	// AcceptedMimeTypes is the OPTIONAL list of acceptable response media
	// types, which may contain wildcards. The default is [DefaultMimeType].
	AcceptedMimeTypes []string

	// AcceptedStatusCodes is the OPTIONAL list of acceptable status codes.
	// The default is [StatusCodeRange](200, 300).
	AcceptedStatusCodes []int

	// ContentType is the OPTIONAL explicit Content-Type. When empty, we
	// infer it from the body we generate.
	ContentType string

	// Username enables HTTP basic authentication when not empty.
	Username string

	// Password is the OPTIONAL basic authentication password.
	Password string

	// CustomHeaders contains OPTIONAL headers that override the
	// controller's extra headers.
	CustomHeaders map[string]string

	// FailSilently suppresses the warnings emitted on connection errors.
	FailSilently bool

	// Paging is the OPTIONAL explicit paging policy. When nil, we use the
	// policy declared by P through the [Pageable] interface, if any.
	Paging *PagePolicy

	// DisablePaging prevents adding paging parameters altogether.
	DisablePaging bool

	// Decode is the OPTIONAL body decoder. Without it, loads fail
	// with a [RequestError] of kind [NoParser].
	Decode DecodeFunc[P]

	// Identity is an OPTIONAL value that takes part in [Descriptor.Equal],
	// for descriptors whose decoder has side effects (e.g., the
	// destination of a file download).
	Identity any
}

// NewDescriptor creates a [*Descriptor] with all defaults spelled out.
func NewDescriptor[P any](serverBase, pathPrefix string) *Descriptor[P] {
	return &Descriptor[P]{
		ServerBase:          serverBase,
		PathPrefix:          pathPrefix,
		Method:              MethodGet,
		AcceptedMimeTypes:   []string{DefaultMimeType},
		AcceptedStatusCodes: StatusCodeRange(200, 300),
	}
}

// Clone returns a copy of d whose maps and slices can be modified
// without affecting d. Body, Paging, and Identity are shared.
func (d *Descriptor[P]) Clone() *Descriptor[P] {
	out := *d
	out.QueryParams = maps.Clone(d.QueryParams)
	out.FormParams = maps.Clone(d.FormParams)
	out.JSONParams = maps.Clone(d.JSONParams)
	out.CustomHeaders = maps.Clone(d.CustomHeaders)
	out.AcceptedMimeTypes = slices.Clone(d.AcceptedMimeTypes)
	out.AcceptedStatusCodes = slices.Clone(d.AcceptedStatusCodes)
	return &out
}

// EffectiveMethod returns the method, applying the default.
func (d *Descriptor[P]) EffectiveMethod() Method {
	return d.Method.orDefault()
}

// EffectiveMimeTypes returns the accepted media types, applying the default.
func (d *Descriptor[P]) EffectiveMimeTypes() []string {
	if len(d.AcceptedMimeTypes) <= 0 {
		return []string{DefaultMimeType}
	}
	return d.AcceptedMimeTypes
}

// EffectiveStatusCodes returns the accepted status codes, applying the default.
func (d *Descriptor[P]) EffectiveStatusCodes() []int {
	if len(d.AcceptedStatusCodes) <= 0 {
		return StatusCodeRange(200, 300)
	}
	return d.AcceptedStatusCodes
}

// PagePolicy returns the paging policy in effect, if any.
func (d *Descriptor[P]) PagePolicy() (PagePolicy, bool) {
	if d.DisablePaging {
		return PagePolicy{}, false
	}
	if d.Paging != nil {
		return d.Paging.withDefaults(), true
	}
	return PagePolicyFor[P]()
}

// QueryParameters returns the query parameters for the given page: the
// paging parameters, if any, overridden by QueryParams.
func (d *Descriptor[P]) QueryParameters(page int) map[string]string {
	out := map[string]string{}
	if policy, good := d.PagePolicy(); good {
		maps.Copy(out, policy.QueryParams(page))
	}
	maps.Copy(out, d.QueryParams)
	return out
}

// JSONBody returns the JSON encoding of JSONParams, with sorted keys, or
// nil when the method does not carry a body or there are no JSONParams.
func (d *Descriptor[P]) JSONBody() ([]byte, error) {
	if !d.EffectiveMethod().allowsBody() || len(d.JSONParams) <= 0 {
		return nil, nil
	}
	return marshalJSONParams(d.JSONParams)
}

// marshalJSONParams encodes params without HTML escaping and without
// the trailing newline added by [json.Encoder].
func marshalJSONParams(params map[string]any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(params); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// FormBody returns the form encoding of FormParams, sorted by key, or
// nil when the method does not carry a body or there are no FormParams.
func (d *Descriptor[P]) FormBody() []byte {
	if !d.EffectiveMethod().allowsBody() || len(d.FormParams) <= 0 {
		return nil
	}
	return []byte(encodeParams(d.FormParams))
}

// Equal returns whether d and other describe the same call. Decoders
// are not compared; use Identity to distinguish otherwise equal calls.
func (d *Descriptor[P]) Equal(other *Descriptor[P]) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.ServerBase == other.ServerBase &&
		d.PathPrefix == other.PathPrefix &&
		d.ObjectID == other.ObjectID &&
		d.PathSuffix == other.PathSuffix &&
		d.EffectiveMethod() == other.EffectiveMethod() &&
		maps.Equal(d.QueryParams, other.QueryParams) &&
		maps.Equal(d.FormParams, other.FormParams) &&
		jsonParamsEqual(d.JSONParams, other.JSONParams) &&
		bytes.Equal(d.Body, other.Body) &&
		slices.Equal(d.EffectiveMimeTypes(), other.EffectiveMimeTypes()) &&
		slices.Equal(d.EffectiveStatusCodes(), other.EffectiveStatusCodes()) &&
		d.ContentType == other.ContentType &&
		d.Username == other.Username &&
		d.Password == other.Password &&
		maps.Equal(d.CustomHeaders, other.CustomHeaders) &&
		d.FailSilently == other.FailSilently &&
		d.DisablePaging == other.DisablePaging &&
		reflect.DeepEqual(d.Paging, other.Paging) &&
		reflect.DeepEqual(d.Identity, other.Identity)
}

// jsonParamsEqual compares the canonical encodings so that, e.g., 1 and
// 1.0 compare equal, as they do on the wire.
func jsonParamsEqual(left, right map[string]any) bool {
	if len(left) <= 0 || len(right) <= 0 {
		return len(left) == len(right)
	}
	lb, lerr := marshalJSONParams(left)
	rb, rerr := marshalJSONParams(right)
	if lerr != nil || rerr != nil {
		return reflect.DeepEqual(left, right)
	}
	return bytes.Equal(lb, rb)
}

// StatusCodeRange returns the status codes in [lo, hi).
func StatusCodeRange(lo, hi int) []int {
	out := []int{}
	for code := lo; code < hi; code++ {
		out = append(out, code)
	}
	return out
}

// StatusCodes returns the given status codes as a list.
func StatusCodes(codes ...int) []int {
	return append([]int{}, codes...)
}
