/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package transform implements the six transform kinds (Filter, Map,
// FilterMap, ArrayMap, Aggregate, Materialize) plus Window, each invoked
// through a common decode-iterate-halt-encode envelope (spec §6). No
// third-party binary-framing library appears anywhere in the example
// corpus, so the batch wire format is reimplemented here with
// encoding/binary, mirroring the shape of the original's
// fluvio_protocol::{Encoder,Decoder} record framing.
package transform

import (
	"encoding/binary"
	"io"
)

// Codec converts a single record to and from its wire bytes, the
// per-record counterpart to state.Codec.
type Codec[T any] struct {
	Encode func(T) ([]byte, error)
	Decode func([]byte) (T, error)
}

// Encode concatenates records into the length-prefixed batch wire
// format: each record is a big-endian uint32 length followed by that
// many bytes, repeated back to back.
func Encode(records [][]byte) []byte {
	var out []byte
	var lenBuf [4]byte
	for _, r := range records {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(r)))
		out = append(out, lenBuf[:]...)
		out = append(out, r...)
	}
	return out
}

// Decode splits a length-prefixed batch back into individual record
// byte slices, in arrival order.
func Decode(batch []byte) ([][]byte, error) {
	var out [][]byte
	for len(batch) > 0 {
		if len(batch) < 4 {
			return nil, io.ErrUnexpectedEOF
		}
		n := binary.BigEndian.Uint32(batch[:4])
		batch = batch[4:]
		if uint64(len(batch)) < uint64(n) {
			return nil, io.ErrUnexpectedEOF
		}
		out = append(out, batch[:n])
		batch = batch[n:]
	}
	return out, nil
}

func decodeBatch[T any](raw []byte, codec Codec[T]) ([]T, error) {
	chunks, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(chunks))
	for _, c := range chunks {
		v, err := codec.Decode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
