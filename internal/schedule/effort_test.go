package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEffort(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"3", 3},
		{"3 aprox", 3},
		{"aprox 3", 3},
		{"2,5", 2.5},
		{"2.5", 2.5},
		{"1,5 paños", 1.5},
		{"-3", -3},
		{"0", 0},
	}
	for _, c := range cases {
		got, ok := ParseEffort(c.in)
		require.True(t, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseEffort_NoNumber(t *testing.T) {
	for _, in := range []string{"", "   ", "aprox", "varios", "s/d"} {
		_, ok := ParseEffort(in)
		assert.False(t, ok, "input %q", in)
	}
}

// Anything below one paño (missing, zero, negative, unparseable) floors
// to exactly one day so every bar has visible width.
func TestDurationDays_Floor(t *testing.T) {
	for _, in := range []string{"", "aprox", "-3", "0", "0,5"} {
		assert.Equal(t, 1.0, DurationDays(in), "input %q", in)
	}
}

func TestDurationDays_Passthrough(t *testing.T) {
	assert.Equal(t, 3.0, DurationDays("3 aprox"))
	assert.Equal(t, 2.5, DurationDays("2,5"))
	assert.Equal(t, 1.0, DurationDays("1"))
}
