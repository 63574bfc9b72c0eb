package utils

import (
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// NewRand returns a random source for seed. Seed 0 draws a seed from the clock, which is
// logged so that the run can be reproduced.
func NewRand(seed int64, clock Clock) *rand.Rand {
	if seed == 0 {
		seed = clock.Now().UnixNano()
		log.Debugf("using random seed %d", seed)
	}
	return rand.New(rand.NewSource(seed))
}
