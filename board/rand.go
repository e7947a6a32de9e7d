package board

// Rand is the source of randomness used for refills and shuffles.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Shuffle pseudo-randomizes the order of n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// Sequence is a Rand that replays a fixed list of values, cycling once the list
// is exhausted. Each value is reduced modulo n. It makes refills and shuffles
// reproducible in scripted scenarios.
type Sequence struct {
	values []int
	next   int
}

// NewSequence returns a Sequence replaying values. With no values it always yields 0,
// which draws a single gem type forever, so New rejects it with ErrUnsettled.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("board: invalid argument to IntN")
	}
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return ((v % n) + n) % n
}

// Shuffle runs a Fisher-Yates shuffle drawing each index from IntN.
func (s *Sequence) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.IntN(i+1))
	}
}
