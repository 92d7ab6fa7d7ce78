// Package technique defines the breathing techniques driven by the pacer:
// fixed, ordered phase lists that repeat for as long as a session runs.
package technique

import (
	"strings"
	"time"
)

// Kind classifies a phase by what the lungs do during it.
type Kind string

const (
	KindInhale Kind = "Inhale"
	KindHold   Kind = "Hold"
	KindExhale Kind = "Exhale"
)

// Phase is one labeled, timed segment of a breathing cycle.
type Phase struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Kind derives the phase kind from its name.
func (p Phase) Kind() Kind {
	switch {
	case strings.HasPrefix(p.Name, string(KindInhale)):
		return KindInhale
	case strings.HasPrefix(p.Name, string(KindExhale)):
		return KindExhale
	default:
		return KindHold
	}
}

// Technique is a named, repeating sequence of phases.
type Technique struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Phases      []Phase `json:"phases"`
}

const (
	KeyBox              = "box"
	KeyDiaphragmatic    = "diaphragmatic"
	KeyAlternateNostril = "alternate-nostril"
)

func phase(name string, seconds int) Phase {
	return Phase{Name: name, Duration: time.Duration(seconds) * time.Second}
}

var (
	Box = Technique{
		Key:         KeyBox,
		Name:        "Box Breathing",
		Description: "Equal duration phases (4-4-4-4) for focus and stress relief.",
		Phases: []Phase{
			phase("Inhale", 4),
			phase("Hold", 4),
			phase("Exhale", 4),
			phase("Hold", 4),
		},
	}

	Diaphragmatic = Technique{
		Key:         KeyDiaphragmatic,
		Name:        "Diaphragmatic Breathing",
		Description: "Deep belly breathing (5-5) for maximum oxygen intake and relaxation.",
		Phases: []Phase{
			phase("Inhale", 5),
			phase("Exhale", 5),
		},
	}

	AlternateNostril = Technique{
		Key:         KeyAlternateNostril,
		Name:        "Alternate Nostril Breathing",
		Description: "Balancing technique (Nadi Shodhana) using alternate nostrils.",
		Phases: []Phase{
			phase("Inhale Left", 4),
			phase("Hold", 4),
			phase("Exhale Right", 4),
			phase("Hold", 4),
			phase("Inhale Right", 4),
			phase("Hold", 4),
			phase("Exhale Left", 4),
			phase("Hold", 4),
		},
	}
)

// Presets returns all techniques in menu order.
func Presets() []Technique {
	return []Technique{Box, Diaphragmatic, AlternateNostril}
}

// Lookup finds a preset by key. "alternate" is accepted for
// alternate-nostril.
func Lookup(key string) (Technique, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyBox, "box-breathing":
		return Box, true
	case KeyDiaphragmatic:
		return Diaphragmatic, true
	case KeyAlternateNostril, "alternate":
		return AlternateNostril, true
	}
	return Technique{}, false
}

// FromChoice maps a menu answer to a technique. Anything that is not
// "2" or "3" selects box breathing.
func FromChoice(choice string) Technique {
	switch strings.TrimSpace(choice) {
	case "2":
		return Diaphragmatic
	case "3":
		return AlternateNostril
	default:
		return Box
	}
}

// Resolve accepts either a preset key or a menu number.
func Resolve(s string) Technique {
	if t, ok := Lookup(s); ok {
		return t
	}
	return FromChoice(s)
}

// CycleDuration is the length of one pass through all phases.
func (t Technique) CycleDuration() time.Duration {
	var d time.Duration
	for _, p := range t.Phases {
		d += p.Duration
	}
	return d
}

// PhaseAt returns the index of the phase active at elapsed time since the
// start of the session, and how far into that phase it is. Cycles wrap.
func (t Technique) PhaseAt(elapsed time.Duration) (int, time.Duration) {
	cycle := t.CycleDuration()
	if cycle <= 0 {
		return 0, 0
	}
	if elapsed < 0 {
		elapsed = 0
	}

	into := elapsed % cycle
	for i, p := range t.Phases {
		if into < p.Duration {
			return i, into
		}
		into -= p.Duration
	}
	return len(t.Phases) - 1, t.Phases[len(t.Phases)-1].Duration
}

// VolumeAt returns the normalized lung fullness at elapsed time: inhale
// phases rise linearly from empty to full, exhale phases fall back, and
// holds keep the level the previous phase ended at.
func (t Technique) VolumeAt(elapsed time.Duration) float64 {
	if len(t.Phases) == 0 {
		return 0
	}

	i, into := t.PhaseAt(elapsed)
	p := t.Phases[i]
	var frac float64
	if p.Duration > 0 {
		frac = float64(into) / float64(p.Duration)
	}

	switch p.Kind() {
	case KindInhale:
		return frac
	case KindExhale:
		return 1 - frac
	default:
		return t.levelBefore(i)
	}
}

// levelBefore walks back from phase i to the nearest inhale or exhale.
func (t Technique) levelBefore(i int) float64 {
	n := len(t.Phases)
	for k := 1; k < n; k++ {
		switch t.Phases[(i-k+n)%n].Kind() {
		case KindInhale:
			return 1
		case KindExhale:
			return 0
		}
	}
	return 0
}
