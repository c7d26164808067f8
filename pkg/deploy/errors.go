package deploy

import "fmt"

// PartialError reports a deployment that failed after some of its work had
// already reached the device. It carries enough detail for the caller to
// re-apply the remainder idempotently or roll back deliberately; the
// coordinator itself never retries.
type PartialError struct {
	// AppliedSlots are the slots whose instruments were deployed before the
	// failure, in deployment order.
	AppliedSlots []int

	// FailedSlot is the slot whose deployment failed, or 0 when instrument
	// deployment completed and applying the connection set failed.
	FailedSlot int

	// Err is the underlying backend failure.
	Err error
}

func (e *PartialError) Error() string {
	if e.FailedSlot != 0 {
		return fmt.Sprintf("partial deployment: slot %d failed after %d slot(s) deployed: %v",
			e.FailedSlot, len(e.AppliedSlots), e.Err)
	}
	return fmt.Sprintf("partial deployment: routing failed after %d slot(s) deployed: %v",
		len(e.AppliedSlots), e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}
