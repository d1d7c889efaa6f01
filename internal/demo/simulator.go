package demo

import (
	"math/rand/v2"
	"time"

	"github.com/garrettladley/moodwatch/internal/detectlog"
	"github.com/garrettladley/moodwatch/internal/emotion"
)

const (
	defaultName = "UNKNOWN"
	// chance a detection keeps the current mood
	defaultStay = 0.8
	// chance a single detection is misread as a random category
	defaultNoise = 0.1
)

// Simulator stands in for the camera pipeline: a mood that mostly holds,
// occasionally shifts, with the odd misread frame. Not safe for concurrent
// use.
type Simulator struct {
	rng   *rand.Rand
	mood  emotion.Emotion
	name  string
	stay  float64
	noise float64
}

func NewSimulator(seed uint64) *Simulator {
	return &Simulator{
		rng:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		mood:  emotion.Neutral,
		name:  defaultName,
		stay:  defaultStay,
		noise: defaultNoise,
	}
}

func (s *Simulator) Next(now time.Time) detectlog.Detection {
	if s.rng.Float64() >= s.stay {
		s.mood = s.random()
	}
	e := s.mood
	if s.rng.Float64() < s.noise {
		e = s.random()
	}
	return detectlog.Detection{Name: s.name, Emotion: e, At: now}
}

func (s *Simulator) random() emotion.Emotion {
	return emotion.All[s.rng.IntN(emotion.Count)]
}
