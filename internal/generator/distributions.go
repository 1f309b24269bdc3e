package generator

import (
	"math"
	"math/rand"

	"github.com/restodata/restogen/internal/models"
)

// weightedValue pairs an enum value with its sampling weight. Draws go
// through an explicit cumulative-weight table so the random call
// sequence stays identical run to run.
type weightedValue struct {
	Value  string
	Weight float64
}

var (
	orderTypeWeights = []weightedValue{
		{Value: models.OrderTypeDineIn, Weight: 0.45},
		{Value: models.OrderTypeDelivery, Weight: 0.4},
		{Value: models.OrderTypeTakeout, Weight: 0.15},
	}
	orderStatusWeights = []weightedValue{
		{Value: models.OrderStatusCompleted, Weight: 0.75},
		{Value: models.OrderStatusPending, Weight: 0.1},
		{Value: models.OrderStatusCancelled, Weight: 0.1},
		{Value: models.OrderStatusRefunded, Weight: 0.05},
	}
)

func selectWeighted(rng *rand.Rand, choices []weightedValue) string {
	totalWeight := 0.0
	for _, c := range choices {
		totalWeight += c.Weight
	}
	if len(choices) == 0 || totalWeight == 0 {
		return ""
	}

	r := rng.Float64() * totalWeight
	currentSum := 0.0
	for _, c := range choices {
		currentSum += c.Weight
		if r <= currentSum {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}

// sampleMenuItems picks k distinct items with a partial Fisher-Yates
// pass over an index pool, preserving draw order.
func sampleMenuItems(rng *rand.Rand, menu []*models.MenuItem, k int) []*models.MenuItem {
	if k > len(menu) {
		k = len(menu)
	}
	indices := make([]int, len(menu))
	for i := range indices {
		indices[i] = i
	}
	picked := make([]*models.MenuItem, 0, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
		picked = append(picked, menu[indices[i]])
	}
	return picked
}

// intBetween returns a uniform integer in [min, max], both inclusive.
func intBetween(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

func floatBetween(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
