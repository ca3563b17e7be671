package test

import (
	"math/rand"
	"sync"
	"time"

	"github.com/polkiloo/authkeeper/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += int(randomIntn(maxLen - minLen + 1))
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// RandomProfile fills every textual profile field with random ASCII data.
func RandomProfile() model.Profile {
	birth := time.Date(1970+randomIntn(40), time.Month(1+randomIntn(12)), 1+randomIntn(28), 0, 0, 0, 0, time.UTC)
	return model.Profile{
		Names:       RandomASCIIString(3, 12),
		Surnames:    RandomASCIIString(3, 12),
		BirthDate:   &birth,
		Sex:         RandomASCIIString(1, 1),
		CivilStatus: RandomASCIIString(5, 10),
		NationalID:  RandomASCIIString(8, 10),
		Address:     RandomASCIIString(10, 30),
		JobTitle:    RandomASCIIString(5, 15),
		Phone:       RandomASCIIString(9, 12),
	}
}
