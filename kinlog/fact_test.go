package kinlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactValidate(t *testing.T) {
	tests := []struct {
		name string
		fact Fact
		ok   bool
	}{
		{"parent", Parent("penny", "alice"), true},
		{"male", Male("manny"), true},
		{"female", Female("penny"), true},
		{"unknown relation", NewFact("spouse", "a", "b"), false},
		{"parent wrong arity", NewFact(RelParent, "a"), false},
		{"male wrong arity", NewFact(RelMale, "a", "b"), false},
		{"empty atom", Parent("", "alice"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fact.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFact)
			}
		})
	}
}

func TestFactEqualAndString(t *testing.T) {
	assert.True(t, Parent("a", "b").Equal(Parent("a", "b")))
	assert.False(t, Parent("a", "b").Equal(Parent("b", "a")))
	assert.False(t, Parent("a", "b").Equal(Male("a")))
	assert.Equal(t, "parent(penny, alice)", Parent("penny", "alice").String())
	assert.Equal(t, "male(manny)", Male("manny").String())
}
