package factories

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

var emailDomains = []string{"example.com", "mail.com", "dinetown.io"}

// weightedValue pairs an enum value with its sampling weight.
type weightedValue struct {
	Value  string
	Weight float64
}

// selectWeighted draws from a cumulative-weight table with a single
// uniform draw. Kept as an explicit table so the draw sequence stays
// stable under a fixed seed.
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

// intBetween returns a uniform integer in [min, max], both inclusive.
func intBetween(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

func floatBetween(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// sampleStrings picks k distinct elements, preserving draw order.
func sampleStrings(rng *rand.Rand, values []string, k int) []string {
	pool := make([]string, len(values))
	copy(pool, values)
	if k > len(pool) {
		k = len(pool)
	}
	out := make([]string, 0, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out = append(out, pool[i])
	}
	return out
}

func randomPhone(rng *rand.Rand) string {
	return fmt.Sprintf("+1-555-%d-%d", intBetween(rng, 100, 999), intBetween(rng, 1000, 9999))
}

func randomEmail(rng *rand.Rand, name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	domain := emailDomains[rng.Intn(len(emailDomains))]
	return fmt.Sprintf("%s%d@%s", base, intBetween(rng, 10, 99), domain)
}

func daysBefore(anchor time.Time, rng *rand.Rand, minDays, maxDays int) time.Time {
	return anchor.AddDate(0, 0, -intBetween(rng, minDays, maxDays))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
