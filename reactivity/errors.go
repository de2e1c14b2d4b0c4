package reactivity

import "errors"

var (
	ErrWrongGoroutine     = errors.New("reactivity: system used from a goroutine it is not bound to")
	ErrJobPanicked        = errors.New("reactivity: deferred job panicked")
	ErrInvalidWatchSource = errors.New("reactivity: invalid watch source")
	ErrUnbalancedBatch    = errors.New("reactivity: EndBatch without matching StartBatch")
)
