package streamerr

// Status codes returned to the host, fixed to match the original
// SmartModuleWindowErrorStatus discriminants (spec §6). Values >= 0 are the
// count of successfully processed records in the batch.
const (
	StatusUnknownError   int32 = -1
	StatusDecodingInput  int32 = -10
	StatusEncodingOutput int32 = -11
	StatusInitDecoding   int32 = -20
	StatusInitError      int32 = -21
)

// StatusFor maps a Kind encountered at batch-decode/encode or init time to
// its fixed host status code. Kinds with no negative-status mapping (those
// that abort a batch but still report a success count) return
// StatusUnknownError.
func StatusFor(kind Kind, stage string) int32 {
	switch stage {
	case "decode-input":
		return StatusDecodingInput
	case "encode-output":
		return StatusEncodingOutput
	case "init-decode":
		return StatusInitDecoding
	case "init":
		return StatusInitError
	default:
		switch kind {
		case KindStateCodec:
			return StatusDecodingInput
		default:
			return StatusUnknownError
		}
	}
}

// RuntimeError is the wire-level error payload attached to a Batch, per
// spec §6: kind, offending offset, stage, and a human message.
type RuntimeError struct {
	Kind    Kind   `json:"kind"`
	Offset  int64  `json:"offset"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// MarshalJSON renders Kind as its name rather than its numeric value, so
// the wire payload reads the same vocabulary as spec §7's error table.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// RuntimeErrorFrom converts an *Error into its wire representation.
func RuntimeErrorFrom(err *Error) *RuntimeError {
	if err == nil {
		return nil
	}
	return &RuntimeError{
		Kind:    err.Kind,
		Offset:  err.Offset,
		Stage:   err.Stage,
		Message: err.Message,
	}
}

// Batch is the reciprocal output envelope (spec §6): an ordered sequence of
// successfully produced records, plus at most one runtime error describing
// where processing halted.
type Batch[T any] struct {
	Successes []T
	Error     *RuntimeError
}

// Status returns the host status code for this batch: the success count
// when there is no error, or the fixed negative code for the error's kind
// and stage.
func (b Batch[T]) Status() int32 {
	if b.Error == nil {
		return int32(len(b.Successes))
	}
	return StatusFor(b.Error.Kind, b.Error.Stage)
}
