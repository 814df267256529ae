package grinfi

import (
	"net/url"
	"strconv"
)

// Params assembles URL query parameters for GET requests.  Values that are
// unset are never added: the upstream treats an absent parameter and an
// empty one differently, so empty strings and non-positive integers are
// dropped rather than sent.
type Params struct {
	v url.Values
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{v: make(url.Values)}
}

// Set adds a parameter unless the value is empty.
func (p *Params) Set(key, value string) *Params {
	if value != "" {
		p.v.Set(key, value)
	}
	return p
}

// SetInt adds an integer parameter unless n is non-positive.
func (p *Params) SetInt(key string, n int) *Params {
	if n > 0 {
		p.v.Set(key, strconv.Itoa(n))
	}
	return p
}

// Filter adds a parameter using the upstream "filter[<field>]" convention
// for GET-based filtering.
func (p *Params) Filter(field, value string) *Params {
	return p.Set("filter["+field+"]", value)
}

// Search adds a free-text search term.  The upstream expects it under the
// "filter[q]" key.
func (p *Params) Search(q string) *Params {
	return p.Filter("q", q)
}

// Values returns the assembled url.Values.  Safe to call on a nil receiver.
func (p *Params) Values() url.Values {
	if p == nil {
		return nil
	}
	return p.v
}
