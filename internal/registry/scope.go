package registry

import "sort"

// Visibility flags a share grant may carry. Anything outside this set is
// silently discarded on every write path.
const (
	ScopeAddress = "address"
	ScopeProfile = "profile"
	ScopePhotos  = "photos"
)

var allowedScopeKeys = map[string]struct{}{
	ScopeAddress: {},
	ScopeProfile: {},
	ScopePhotos:  {},
}

// Scope is a whitelisted set of visibility flags. Entries are only ever true;
// a flag that is off is simply absent.
type Scope map[string]bool

// Has reports whether the scope enables the given flag.
func (s Scope) Has(key string) bool {
	return s[key]
}

// SanitizeScope filters arbitrary decoded JSON down to the allowed flag set,
// keeping only truthy values normalized to true. Nil input yields an empty
// scope.
func SanitizeScope(in map[string]any) Scope {
	out := make(Scope, len(allowedScopeKeys))
	for key, value := range in {
		if _, ok := allowedScopeKeys[key]; !ok {
			continue
		}
		if truthy(value) {
			out[key] = true
		}
	}
	return out
}

// Keys returns the enabled flags in sorted order.
func (s Scope) Keys() []string {
	out := make([]string, 0, len(s))
	for key, on := range s {
		if on {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// FullScope returns a scope enabling every visibility flag. Used for owners
// and managing agents.
func FullScope() Scope {
	return Scope{
		ScopeAddress: true,
		ScopeProfile: true,
		ScopePhotos:  true,
	}
}

// truthy follows the loose semantics of decoded JSON values: false, zero,
// empty string and null are falsy, everything else counts as set.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
