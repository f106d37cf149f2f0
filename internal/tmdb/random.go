package tmdb

import (
	"math/rand/v2"
	"slices"

	"github.com/iliyamo/movies-catalogue/internal/model"
)

// Randomizer is the randomness used for sampling and backdrop selection.
// *rand.Rand from math/rand/v2 satisfies it; tests pass seeded or scripted
// sources.
type Randomizer interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand uses the math/rand/v2 top-level source, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRandomizer returns the process-wide randomness source.
func DefaultRandomizer() Randomizer { return globalRand{} }

// Sample returns up to count movies drawn without replacement from src.
// src is never reordered; the shuffle runs on a copy.
func Sample(src []model.MovieSummary, count int, r Randomizer) []model.MovieSummary {
	if count <= 0 || len(src) == 0 {
		return []model.MovieSummary{}
	}
	cp := slices.Clone(src)
	r.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	if count > len(cp) {
		count = len(cp)
	}
	return cp[:count]
}

// PickBackdrop chooses one backdrop uniformly at random.
func PickBackdrop(set *model.ImageSet, r Randomizer) (model.Image, error) {
	if set == nil || len(set.Backdrops) == 0 {
		return nil, ErrNoImageAvailable
	}
	return set.Backdrops[r.IntN(len(set.Backdrops))], nil
}
