package state

// WithState runs fn against the live value held by g, saving the
// (possibly mutated) value back through the backend when fn returns —
// the "purer alternative" spec §9 recommends over Restore/Save pairs
// scattered through user code: a host threads &T through every call
// instead of each call independently restoring and saving. The
// transform.Materialize kind applies the same save-once pattern across a
// whole batch on its own, without calling WithState.
func WithState[T any, Output any](g *Guard[T], fn func(state *T) (Output, error)) (Output, error) {
	out, err := fn(g.Value())
	if saveErr := g.Save(); saveErr != nil && err == nil {
		err = saveErr
	}
	return out, err
}
