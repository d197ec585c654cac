package transform

import (
	"errors"

	"github.com/rulego/streamwindow/streamerr"
)

// toStreamErr classifies a user function's error as a *streamerr.Error,
// wrapping it as KindUserRuntime when it isn't already one — this is the
// boundary where arbitrary user errors enter the engine's kind vocabulary
// (spec §7).
func toStreamErr(err error) *streamerr.Error {
	var se *streamerr.Error
	if errors.As(err, &se) {
		return se
	}
	return streamerr.Wrap(streamerr.KindUserRuntime, "transform function", err)
}

// process is the shared envelope body behind Filter/Map/FilterMap/
// ArrayMap: decode the batch, call step once per record in order,
// collect zero-or-more outputs per record, and halt at the first error —
// returning everything encoded so far plus a RuntimeError describing
// where it stopped (spec §6's "partial success preserved on halt").
func process[In, Out any](
	raw []byte,
	inCodec Codec[In],
	outCodec Codec[Out],
	step func(In) ([]Out, error),
) ([]byte, *streamerr.RuntimeError) {
	records, decErr := decodeBatch(raw, inCodec)
	if decErr != nil {
		return nil, streamerr.RuntimeErrorFrom(
			streamerr.Wrap(streamerr.KindAdapterMalformed, "decode batch", decErr).WithOffset(0, "decode-input"),
		)
	}

	var outRaw [][]byte
	for i, rec := range records {
		outs, err := step(rec)
		if err != nil {
			se := toStreamErr(err).WithOffset(int64(i), "transform")
			return Encode(outRaw), streamerr.RuntimeErrorFrom(se)
		}
		for _, o := range outs {
			enc, encErr := outCodec.Encode(o)
			if encErr != nil {
				se := streamerr.Wrap(streamerr.KindAdapterMalformed, "encode output", encErr).WithOffset(int64(i), "encode-output")
				return Encode(outRaw), streamerr.RuntimeErrorFrom(se)
			}
			outRaw = append(outRaw, enc)
		}
	}
	return Encode(outRaw), nil
}
