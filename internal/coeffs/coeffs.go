package coeffs

import (
	"strconv"
	"sync"
)

const (
	// Harmonics is the number of harmonic slots, k = 0..6.
	Harmonics = 7
	MaxValue  = 50
	MinValue  = -MaxValue
	// Scale converts a stored integer into a real amplitude.
	Scale = 10.0
)

// Kind selects the cosine (a) or sine (b) column.
type Kind int

const (
	Cosine Kind = iota
	Sine
)

func (k Kind) String() string {
	switch k {
	case Cosine:
		return "a"
	case Sine:
		return "b"
	default:
		return "?"
	}
}

// Set is a value snapshot of all coefficients. B[0] is always zero.
type Set struct {
	A [Harmonics]int
	B [Harmonics]int
}

// Amplitude returns the real amplitude of a coefficient. Out of range
// lookups return 0.
func (s Set) Amplitude(index int, kind Kind) float64 {
	return float64(s.value(index, kind)) / Scale
}

func (s Set) value(index int, kind Kind) int {
	if index < 0 || index >= Harmonics {
		return 0
	}
	if kind == Sine {
		return s.B[index]
	}
	return s.A[index]
}

// Entry is one displayable coefficient.
type Entry struct {
	Name      string
	Kind      Kind
	Index     int
	Value     int
	Amplitude float64
}

func (e Entry) String() string {
	return e.Name + ": " + strconv.FormatFloat(e.Amplitude, 'f', 1, 64)
}

// Entries lists a0 followed by the a/b pair of each harmonic k >= 1.
func (s Set) Entries() []Entry {
	out := make([]Entry, 0, 2*Harmonics-1)
	for k := 0; k < Harmonics; k++ {
		out = append(out, s.entry(k, Cosine))
		if k > 0 {
			out = append(out, s.entry(k, Sine))
		}
	}
	return out
}

func (s Set) entry(index int, kind Kind) Entry {
	return Entry{
		Name:      kind.String() + strconv.Itoa(index),
		Kind:      kind,
		Index:     index,
		Value:     s.value(index, kind),
		Amplitude: s.Amplitude(index, kind),
	}
}

// Clamp bounds v to [MinValue, MaxValue].
func Clamp(v int) int {
	if v < MinValue {
		return MinValue
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}

// Store owns the coefficient arrays. Callers only ever see copies.
type Store struct {
	mu  sync.Mutex
	set Set
}

func NewStore() *Store {
	return &Store{}
}

// Set clamps and stores value. It reports whether a change was signalled;
// the sine slot of harmonic 0 and out of range indices are ignored.
// Writing the value already stored still counts as a change.
func (s *Store) Set(index int, kind Kind, value int) bool {
	if index < 0 || index >= Harmonics {
		return false
	}
	if kind == Sine && index == 0 {
		return false
	}
	value = Clamp(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case Cosine:
		s.set.A[index] = value
	case Sine:
		s.set.B[index] = value
	default:
		return false
	}
	return true
}

func (s *Store) Get(index int, kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.value(index, kind)
}

func (s *Store) Snapshot() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// Reset zeros every coefficient.
func (s *Store) Reset() {
	s.mu.Lock()
	s.set = Set{}
	s.mu.Unlock()
}
