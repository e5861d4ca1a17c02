package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewID()
		assert.NotEmpty(t, id)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewID_Shape(t *testing.T) {
	id := NewID()
	assert.Contains(t, id, "-")
	assert.Greater(t, len(id), 9)
}
