package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDenylist_Match(t *testing.T) {
	denylist := NewDenylist()

	tests := []struct {
		name      string
		module    string
		wantEntry string
		wantMatch bool
	}{
		{"plain stdlib module", "json.decoder", "", false},
		{"idlelib prefix", "idlelib.bar", "idlelib", true},
		{"test package in the middle", "email.test.test_utils", ".test.", true},
		{"private submodule", "asyncio._helpers", "._", true},
		{"dash in name", "my-module", "-", true},
		{"case sensitive", "Idlelib.bar", "", false},
		{"unanchored", "vendored.pip.utils", "pip", true},
		{"site-packages django", "django.db.models", "django.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := denylist.Match(tt.module)
			assert.Equal(t, tt.wantMatch, ok)
			assert.Equal(t, tt.wantEntry, entry)
		})
	}
}

func TestNewDenylist_Extras(t *testing.T) {
	denylist := NewDenylist("", "numpy.")

	assert.Len(t, denylist.Entries(), len(DefaultSkip)+1)

	entry, ok := denylist.Match("numpy.linalg")
	assert.True(t, ok)
	assert.Equal(t, "numpy.", entry)

	_, ok = denylist.Match("json")
	assert.False(t, ok, "blank entries must not match everything")
}

func TestDenylist_EntriesIsCopy(t *testing.T) {
	denylist := NewDenylist()

	entries := denylist.Entries()
	entries[0] = "json"

	_, ok := denylist.Match("json")
	assert.False(t, ok)
}
