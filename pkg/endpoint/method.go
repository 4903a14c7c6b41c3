package endpoint

import "net/http"

// Method is the HTTP method of a [Descriptor].
type Method string

const (
	MethodGet    = Method(http.MethodGet)
	MethodPost   = Method(http.MethodPost)
	MethodPatch  = Method(http.MethodPatch)
	MethodDelete = Method(http.MethodDelete)
)

// allowsBody returns whether form and JSON parameters produce a body.
func (m Method) allowsBody() bool {
	return m == MethodPost || m == MethodPatch
}

// orDefault returns [MethodGet] for the zero value.
func (m Method) orDefault() Method {
	if m == "" {
		return MethodGet
	}
	return m
}
