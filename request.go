package gpterm

import "fmt"

// Request carries the full conversation and sampling parameters for one
// turn. Providers use their own default model when Model is empty.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64

	// Gate is observed by the stream between chunks. Nil never cancels.
	Gate *Gate
}

// Validate checks universal constraints on Request.
// Provider implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if r.Temperature < 0 || r.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %g: %w", r.Temperature, ErrValidation)
	}
	if len(r.Messages) == 0 {
		return fmt.Errorf("request has no messages: %w", ErrValidation)
	}
	for i, msg := range r.Messages {
		if err := ValidateMessage(msg); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	return nil
}
