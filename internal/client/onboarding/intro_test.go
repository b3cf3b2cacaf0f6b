package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntro_Paging(t *testing.T) {
	var in Intro

	assert.Len(t, in.Slides(), 3)
	assert.Equal(t, 0, in.Index())
	assert.Equal(t, "Welcome to SikaCare", in.Current().Title)
	assert.False(t, in.Previous(), "cannot go before the first slide")

	assert.True(t, in.Next())
	assert.True(t, in.Next())
	assert.True(t, in.IsLast())
	assert.False(t, in.Next(), "cannot go past the last slide")
	assert.Equal(t, 2, in.Index())

	assert.True(t, in.Previous())
	assert.Equal(t, 1, in.Index())
	assert.False(t, in.IsLast())
}
