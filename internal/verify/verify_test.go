package verify

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHandle(t *testing.T) {
	testCases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"olena.k", "olena.k", true},
		{"@olena.k", "olena.k", true},
		{"  @olena_k  ", "olena_k", true},
		{"User.Name_123", "User.Name_123", true},
		{"", "", false},
		{"@", "", false},
		{"@@olena", "", false},
		{"пользователь", "", false},
		{"has space", "", false},
		{"way.too.long.handle.over.thirty.chars", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := NormalizeHandle(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCheckers(t *testing.T) {
	ctx := context.Background()

	ok, err := Auto{}.Check(ctx, "any")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Manual{}.Check(ctx, "any")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRandomRespectsPassRate(t *testing.T) {
	ctx := context.Background()

	always := Random{PassRate: 1.0, Rnd: rand.New(rand.NewSource(1))}
	never := Random{PassRate: 0.0, Rnd: rand.New(rand.NewSource(1))}
	for i := 0; i < 50; i++ {
		ok, err := always.Check(ctx, "h")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = never.Check(ctx, "h")
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestFromConfig(t *testing.T) {
	assert.IsType(t, Auto{}, FromConfig("auto", 0.7))
	assert.IsType(t, Manual{}, FromConfig("manual", 0.7))
	assert.IsType(t, Random{}, FromConfig("random", 0.7))
	// неизвестный режим безопаснее трактовать как ручную проверку
	assert.IsType(t, Manual{}, FromConfig("whatever", 0.7))
}
