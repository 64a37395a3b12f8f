package event

// Phase enumerates the lifecycle of an asynchronous fetch.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// LoadingState is the renderable form of an asynchronous fetch. It is
// replaced wholesale on every transition; the zero value is PhaseInit.
// Transitions flow Init → Loading → Loaded|Error, and a fresh Loading may
// re-enter from Loaded/Error on refresh.
type LoadingState[T any] struct {
	phase Phase
	value T
	err   string
}

// Loading returns a LoadingState in the in-flight phase.
func Loading[T any]() LoadingState[T] {
	return LoadingState[T]{phase: PhaseLoading}
}

// Loaded wraps a successfully fetched value.
func Loaded[T any](v T) LoadingState[T] {
	return LoadingState[T]{phase: PhaseLoaded, value: v}
}

// Failed wraps a fetch failure reason.
func Failed[T any](reason string) LoadingState[T] {
	return LoadingState[T]{phase: PhaseError, err: reason}
}

func (s LoadingState[T]) Phase() Phase { return s.phase }

// Value returns the loaded value; ok is false unless the phase is Loaded.
func (s LoadingState[T]) Value() (v T, ok bool) {
	if s.phase != PhaseLoaded {
		return v, false
	}
	return s.value, true
}

// Err returns the failure reason; ok is false unless the phase is Error.
func (s LoadingState[T]) Err() (string, bool) {
	if s.phase != PhaseError {
		return "", false
	}
	return s.err, true
}
