package engine

import "strings"

// LocationInTransit is the location string used while between ports.
const LocationInTransit = "In Transit"

// ContextTag is the context derived from the current location.
type ContextTag string

const (
	TagInSpace ContextTag = "In Space"
	TagDocked  ContextTag = "Docked"
)

// DeriveContext maps a location to its context tag.
func DeriveContext(location string) ContextTag {
	if location == LocationInTransit {
		return TagInSpace
	}
	return TagDocked
}

// IsPort reports whether arriving at location can produce port events.
func IsPort(location string) bool {
	return strings.Contains(location, "Port")
}

// ActivationContext filters where a pending event may fire.
type ActivationContext string

const (
	ContextInTransit ActivationContext = "InTransit"
	ContextDocked    ActivationContext = "Docked"
	ContextAny       ActivationContext = "Any"
)

// Matches reports whether an instance with this context may fire under tag.
func (a ActivationContext) Matches(tag ContextTag) bool {
	switch a {
	case ContextAny:
		return true
	case ContextInTransit:
		return tag == TagInSpace
	case ContextDocked:
		return tag == TagDocked
	}
	return false
}
