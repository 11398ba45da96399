// Package gains implements the capital-gains aggregation engine: portfolio
// selector resolution, position retrieval across stocks services, share-count
// filtering, and the gain fold itself.
package gains

// Upstream is one stocks service the aggregator can draw positions from
type Upstream struct {
	Tag     string
	BaseURL string
}

// Resolve maps a portfolio selector to the set of upstreams to query.
// An empty selector resolves to every configured upstream, in order. A
// recognized tag resolves to exactly that upstream. An unrecognized tag
// resolves to no upstreams at all, which yields an aggregate of zero rather
// than an error ("unknown portfolio means no data").
func Resolve(selector string, upstreams []Upstream) []Upstream {
	if selector == "" {
		return upstreams
	}
	for _, u := range upstreams {
		if u.Tag == selector {
			return []Upstream{u}
		}
	}
	return nil
}
