package endpoint

//
// Paging policies
//

import (
	"reflect"
	"strconv"
)

const (
	// DefaultPerPage is the default number of objects per page.
	DefaultPerPage = 30

	// DefaultPerPageLabel is the default query key for the page size.
	DefaultPerPageLabel = "per_page"

	// DefaultPageLabel is the default query key for the page number.
	DefaultPageLabel = "page"

	// DefaultPage is the page loaded when the caller does not choose one.
	DefaultPage = 1
)

// PagePolicy tells a [Descriptor] how to add paging query parameters.
type PagePolicy struct {
	// PerPage is the number of objects per page. Zero means [DefaultPerPage].
	PerPage int

	// PerPageLabel is the query key for PerPage. Empty means [DefaultPerPageLabel].
	PerPageLabel string

	// PageLabel is the query key for the page number. Empty means [DefaultPageLabel].
	PageLabel string

	// PageOffset is added to the page number before sending it. Servers
	// whose pages start at zero use -1.
	PageOffset int
}

// DefaultPagePolicy returns the policy used when a payload declares paging
// without customizing it.
func DefaultPagePolicy() PagePolicy {
	return PagePolicy{
		PerPage:      DefaultPerPage,
		PerPageLabel: DefaultPerPageLabel,
		PageLabel:    DefaultPageLabel,
		PageOffset:   0,
	}
}

// withDefaults fills the zero fields of pp.
func (pp PagePolicy) withDefaults() PagePolicy {
	if pp.PerPage == 0 {
		pp.PerPage = DefaultPerPage
	}
	if pp.PerPageLabel == "" {
		pp.PerPageLabel = DefaultPerPageLabel
	}
	if pp.PageLabel == "" {
		pp.PageLabel = DefaultPageLabel
	}
	return pp
}

// QueryParams returns the query parameters for the given page. Pages
// are numbered from 1: smaller values select [DefaultPage].
func (pp PagePolicy) QueryParams(page int) map[string]string {
	pp = pp.withDefaults()
	if page < 1 {
		page = DefaultPage
	}
	return map[string]string{
		pp.PerPageLabel: strconv.Itoa(pp.PerPage),
		pp.PageLabel:    strconv.Itoa(page + pp.PageOffset),
	}
}

// Pageable is implemented by payload types that are loaded in pages.
// The method is called on the zero value of the type, so it must not
// depend on instance data.
type Pageable interface {
	PagePolicy() PagePolicy
}

var pageableType = reflect.TypeOf((*Pageable)(nil)).Elem()

// PagePolicyFor returns the policy declared by the payload type P. Slices
// and arrays use the policy of their element type. The boolean is false
// when P does not declare paging.
func PagePolicyFor[P any]() (PagePolicy, bool) {
	return pagePolicyForType(reflect.TypeOf((*P)(nil)).Elem())
}

func pagePolicyForType(t reflect.Type) (PagePolicy, bool) {
	if pageable, good := pageableInstance(t); good {
		return pageable.PagePolicy().withDefaults(), true
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return pagePolicyForType(t.Elem())
	}
	return PagePolicy{}, false
}

// pageableInstance returns a usable Pageable for t, if any. Pointer types
// get a freshly allocated value so that value receivers do not see nil.
func pageableInstance(t reflect.Type) (Pageable, bool) {
	switch {
	case t.Kind() == reflect.Interface:
		return nil, false
	case t.Kind() == reflect.Pointer && t.Implements(pageableType):
		return reflect.New(t.Elem()).Interface().(Pageable), true
	case t.Implements(pageableType):
		return reflect.Zero(t).Interface().(Pageable), true
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(pageableType):
		return reflect.New(t).Interface().(Pageable), true
	}
	return nil, false
}
