package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate_Valid(t *testing.T) {
	g := NewUUIDGenerator()

	id := g.Generate()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDGenerator_Generate_Unique(t *testing.T) {
	g := NewUUIDGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := g.Generate()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestUUIDGenerator_Generate_TimeOrdered(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	second := g.Generate()

	// UUIDv7 ids sort by generation time, the property the SQL backends
	// rely on for stable list ordering.
	assert.LessOrEqual(t, first, second)
}
