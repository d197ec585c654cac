package transform

import (
	"encoding/json"

	"github.com/rulego/streamwindow/adapter"
	"github.com/rulego/streamwindow/streamerr"
	"github.com/rulego/streamwindow/window"
)

// Window feeds every record in the batch through mgr.Add in order,
// emitting one encoded window.CompletedWindow for each rollover that
// occurs mid-batch (spec §6's Window transform kind: the seventh kind,
// distinguished from Aggregate by completing and re-opening rather than
// accumulating indefinitely). Completed-window encoding goes through
// encoding/json directly, since a CompletedWindow is always a host-facing
// output, never a record re-ingested by another transform stage.
func Window[K comparable, V any, S window.Accumulator[K, V], Sel any, Rec adapter.Record[K, V, Sel]](
	raw []byte,
	inCodec Codec[Rec],
	mgr *window.TumblingWindow[K, V, S, Sel],
) ([]byte, *streamerr.RuntimeError) {
	records, decErr := decodeBatch(raw, inCodec)
	if decErr != nil {
		return nil, streamerr.RuntimeErrorFrom(
			streamerr.Wrap(streamerr.KindAdapterMalformed, "decode batch", decErr).WithOffset(0, "decode-input"),
		)
	}

	var completedRaw [][]byte
	for i, rec := range records {
		completed, err := mgr.Add(rec)
		if err != nil {
			se := toStreamErr(err).WithOffset(int64(i), "window")
			return Encode(completedRaw), streamerr.RuntimeErrorFrom(se)
		}
		if completed == nil {
			continue
		}
		enc, encErr := json.Marshal(completed)
		if encErr != nil {
			se := streamerr.Wrap(streamerr.KindAdapterMalformed, "encode completed window", encErr).WithOffset(int64(i), "encode-output")
			return Encode(completedRaw), streamerr.RuntimeErrorFrom(se)
		}
		completedRaw = append(completedRaw, enc)
	}
	return Encode(completedRaw), nil
}
