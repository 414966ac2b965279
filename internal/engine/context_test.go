package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveContext(t *testing.T) {
	assert.Equal(t, TagInSpace, DeriveContext("In Transit"))
	assert.Equal(t, TagDocked, DeriveContext("Port Alpha"))
	assert.Equal(t, TagDocked, DeriveContext("Deep Space Relay"))
}

func TestActivationContext_Matches(t *testing.T) {
	tests := []struct {
		ctx  ActivationContext
		tag  ContextTag
		want bool
	}{
		{ContextInTransit, TagInSpace, true},
		{ContextInTransit, TagDocked, false},
		{ContextDocked, TagDocked, true},
		{ContextDocked, TagInSpace, false},
		{ContextAny, TagInSpace, true},
		{ContextAny, TagDocked, true},
		{ActivationContext("Orbit"), TagDocked, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ctx.Matches(tt.tag), "%s/%s", tt.ctx, tt.tag)
	}
}

func TestIsPort(t *testing.T) {
	assert.True(t, IsPort("Port Gamma"))
	assert.False(t, IsPort("In Transit"))
}
