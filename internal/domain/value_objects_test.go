package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTitle(t *testing.T) {
	title, err := NewTitle("  Estudiar Go  ")
	require.NoError(t, err)
	assert.Equal(t, "Estudiar Go", title.String())

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := NewTitle(in)
		assert.ErrorIs(t, err, ErrTitleRequired, "input %q", in)
		assert.ErrorIs(t, err, ErrValidation, "input %q", in)
	}
}

func TestNewCommentText(t *testing.T) {
	text, err := NewCommentText(" blocked ")
	require.NoError(t, err)
	assert.Equal(t, "blocked", text)

	_, err = NewCommentText("  ")
	assert.ErrorIs(t, err, ErrCommentRequired)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"pending", StatusPending},
		{"IN_PROGRESS", StatusInProgress},
		{" completed ", StatusCompleted},
		{"expired", StatusExpired},
	}
	for _, tt := range tests {
		got, err := NewStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := NewStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewPriority(t *testing.T) {
	p, err := NewPriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	p, err = NewPriority("alta")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = NewPriority("Urgente")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryPersonal, c)

	c, err = NewCategory("HOGAR")
	require.NoError(t, err)
	assert.Equal(t, CategoryHome, c)

	_, err = NewCategory("Ocio")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 0, Priority("Urgente").Rank())
}
