package rolling

import (
	"math"

	"github.com/rulego/streamwindow/streamerr"
)

// Number is the set of additive, zero-initializable types Sum accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum is a running total over samples of type A. The zero value is ready
// to use.
type Sum[A Number] struct {
	Count uint32
	Value A
}

// Add folds x into the running total. It fails with KindCounterOverflow if
// Count is already at its maximum representable value; the sum itself is
// never checked for overflow (callers pick A wide enough for their domain,
// same as functions.SumFunction does by relying on float64 accumulation).
func (s *Sum[A]) Add(x A) error {
	if s.Count == math.MaxUint32 {
		return streamerr.New(streamerr.KindCounterOverflow, "rolling sum sample count overflow")
	}
	s.Count++
	s.Value += x
	return nil
}
