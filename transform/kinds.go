package transform

import (
	"github.com/rulego/streamwindow/state"
	"github.com/rulego/streamwindow/streamerr"
)

// FilterFn reports whether rec should be kept in the output batch.
type FilterFn[T any] func(rec T) (bool, error)

// Filter keeps records for which fn returns true, in arrival order.
func Filter[T any](raw []byte, codec Codec[T], fn FilterFn[T]) ([]byte, *streamerr.RuntimeError) {
	return process(raw, codec, codec, func(rec T) ([]T, error) {
		keep, err := fn(rec)
		if err != nil || !keep {
			return nil, err
		}
		return []T{rec}, nil
	})
}

// MapFn transforms every record unconditionally.
type MapFn[In, Out any] func(rec In) (Out, error)

// Map applies fn to every record, producing exactly one output per input.
func Map[In, Out any](raw []byte, inCodec Codec[In], outCodec Codec[Out], fn MapFn[In, Out]) ([]byte, *streamerr.RuntimeError) {
	return process(raw, inCodec, outCodec, func(rec In) ([]Out, error) {
		out, err := fn(rec)
		if err != nil {
			return nil, err
		}
		return []Out{out}, nil
	})
}

// FilterMapFn transforms and conditionally keeps a record in one step.
type FilterMapFn[In, Out any] func(rec In) (Out, bool, error)

// FilterMap applies fn to every record, keeping the transformed output
// only where fn reports ok.
func FilterMap[In, Out any](raw []byte, inCodec Codec[In], outCodec Codec[Out], fn FilterMapFn[In, Out]) ([]byte, *streamerr.RuntimeError) {
	return process(raw, inCodec, outCodec, func(rec In) ([]Out, error) {
		out, ok, err := fn(rec)
		if err != nil || !ok {
			return nil, err
		}
		return []Out{out}, nil
	})
}

// ArrayMapFn expands one input record into zero or more output records.
type ArrayMapFn[In, Out any] func(rec In) ([]Out, error)

// ArrayMap applies fn to every record, flattening its results into the
// output batch in order.
func ArrayMap[In, Out any](raw []byte, inCodec Codec[In], outCodec Codec[Out], fn ArrayMapFn[In, Out]) ([]byte, *streamerr.RuntimeError) {
	return process(raw, inCodec, outCodec, fn)
}

// AggregateFn folds one record into a running accumulator held across
// batches (typically persisted via the state package).
type AggregateFn[In, Acc any] func(acc *Acc, rec In) error

// Aggregate folds every record in the batch into acc in order, halting
// at the first error. It produces no output batch of its own — the
// accumulated value is read back out through the state.Guard the caller
// restored acc from (spec §4.6: aggregate has no per-record output,
// only accumulated state).
func Aggregate[In, Acc any](raw []byte, inCodec Codec[In], guard *state.Guard[Acc], fn AggregateFn[In, Acc]) *streamerr.RuntimeError {
	records, decErr := decodeBatch(raw, inCodec)
	if decErr != nil {
		return streamerr.RuntimeErrorFrom(
			streamerr.Wrap(streamerr.KindAdapterMalformed, "decode batch", decErr).WithOffset(0, "decode-input"),
		)
	}
	acc := guard.Value()
	for i, rec := range records {
		if err := fn(acc, rec); err != nil {
			return streamerr.RuntimeErrorFrom(toStreamErr(err).WithOffset(int64(i), "aggregate"))
		}
	}
	return nil
}

// MaterializeFn transforms a record against a mutable threaded state
// value, producing one output per input.
type MaterializeFn[In, S, Out any] func(state *S, rec In) (Out, error)

// Materialize is the "purer alternative" to Restore/Save pairs scattered
// through a Map-like transform (spec §4.7, §9): it threads &S through
// every record in the batch and persists it exactly once at the end,
// saving even on a mid-batch halt so partial progress survives.
func Materialize[In, S, Out any](raw []byte, inCodec Codec[In], outCodec Codec[Out], guard *state.Guard[S], fn MaterializeFn[In, S, Out]) ([]byte, *streamerr.RuntimeError) {
	records, decErr := decodeBatch(raw, inCodec)
	if decErr != nil {
		return nil, streamerr.RuntimeErrorFrom(
			streamerr.Wrap(streamerr.KindAdapterMalformed, "decode batch", decErr).WithOffset(0, "decode-input"),
		)
	}

	s := guard.Value()
	var outRaw [][]byte
	for i, rec := range records {
		out, err := fn(s, rec)
		if err != nil {
			_ = guard.Save()
			return Encode(outRaw), streamerr.RuntimeErrorFrom(toStreamErr(err).WithOffset(int64(i), "materialize"))
		}
		enc, encErr := outCodec.Encode(out)
		if encErr != nil {
			_ = guard.Save()
			se := streamerr.Wrap(streamerr.KindAdapterMalformed, "encode output", encErr).WithOffset(int64(i), "encode-output")
			return Encode(outRaw), streamerr.RuntimeErrorFrom(se)
		}
		outRaw = append(outRaw, enc)
	}
	if err := guard.Save(); err != nil {
		return Encode(outRaw), streamerr.RuntimeErrorFrom(toStreamErr(err))
	}
	return Encode(outRaw), nil
}
