// Package domain maps domain files to live sites and samples them.
package domain

import (
	"errors"
	"regexp"

	"golang.org/x/net/idna"
)

// ErrDomainExcluded means the path carries no usable domain. Not worth logging.
var ErrDomainExcluded = errors.New("domain excluded")

// Hosting panel layout: /home/{user}/domains/{domain}/public_html/...
var domainFromPath = regexp.MustCompile(`/domains/(.*?)/public_html/`)

// Target is the live location that corresponds to a domain file
type Target struct {
	Name        string // domain directory name
	RequestPath string // path below public_html, always starting with "/"
}

// Host returns the ASCII form of the domain used in requests
func (t Target) Host() string {
	for i := 0; i < len(t.Name); i++ {
		if t.Name[i] >= 0x80 {
			ascii, err := idna.Lookup.ToASCII(t.Name)
			if err != nil {
				return t.Name
			}
			return ascii
		}
	}
	return t.Name
}

// URL builds the probe URL for a protocol
func (t Target) URL(protocol string) string {
	return protocol + "://" + t.Host() + t.RequestPath
}

// Resolver extracts domain targets from file paths
type Resolver struct {
	policy *Policy
}

// NewResolver creates a resolver; a nil policy means DefaultPolicy
func NewResolver(policy *Policy) *Resolver {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Resolver{policy: policy}
}

// Resolve returns the target for a path, or false when the path is not
// under a domain document root or the domain is reserved
func (r *Resolver) Resolve(path string) (Target, bool) {
	loc := domainFromPath.FindStringSubmatchIndex(path)
	if loc == nil {
		return Target{}, false
	}

	name := path[loc[2]:loc[3]]
	if r.policy.IsReserved(name) {
		return Target{}, false
	}

	// loc[1] is just past the trailing slash of public_html/
	return Target{
		Name:        name,
		RequestPath: path[loc[1]-1:],
	}, true
}
