package generator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restodata/restogen/internal/models"
)

func TestSelectWeighted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("respects the value set", func(t *testing.T) {
		valid := map[string]bool{"a": true, "b": true, "c": true}
		choices := []weightedValue{
			{Value: "a", Weight: 0.2},
			{Value: "b", Weight: 0.5},
			{Value: "c", Weight: 0.3},
		}
		seen := map[string]int{}
		for i := 0; i < 1000; i++ {
			v := selectWeighted(rng, choices)
			require.True(t, valid[v])
			seen[v]++
		}
		// every value should show up over 1000 draws
		require.Len(t, seen, 3)
		require.Greater(t, seen["b"], seen["a"])
	})

	t.Run("single choice always wins", func(t *testing.T) {
		choices := []weightedValue{{Value: "only", Weight: 1}}
		for i := 0; i < 10; i++ {
			require.Equal(t, "only", selectWeighted(rng, choices))
		}
	})

	t.Run("empty table", func(t *testing.T) {
		require.Equal(t, "", selectWeighted(rng, nil))
		require.Equal(t, "", selectWeighted(rng, []weightedValue{{Value: "x", Weight: 0}}))
	})
}

func TestSampleMenuItems(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	menu := make([]*models.MenuItem, 10)
	for i := range menu {
		menu[i] = &models.MenuItem{ItemID: fmt.Sprintf("menu_%03d", i+1)}
	}

	t.Run("distinct picks", func(t *testing.T) {
		for trial := 0; trial < 100; trial++ {
			picked := sampleMenuItems(rng, menu, 4)
			require.Len(t, picked, 4)
			seen := map[string]bool{}
			for _, item := range picked {
				require.False(t, seen[item.ItemID], "duplicate pick %s", item.ItemID)
				seen[item.ItemID] = true
			}
		}
	})

	t.Run("clamps k to pool size", func(t *testing.T) {
		picked := sampleMenuItems(rng, menu[:2], 4)
		require.Len(t, picked, 2)
	})
}

func TestIntBetweenBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 1000; i++ {
		v := intBetween(rng, 8, 21)
		require.GreaterOrEqual(t, v, 8)
		require.LessOrEqual(t, v, 21)
	}
	require.Equal(t, 5, intBetween(rng, 5, 5))
}

func TestFloatBetweenBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 1000; i++ {
		v := floatBetween(rng, 3.5, 6.5)
		require.GreaterOrEqual(t, v, 3.5)
		require.Less(t, v, 6.5)
	}
}
