package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T. Events published in-process
// carry T itself or a pointer to it; anything else, such as a payload read
// back from the dead-letter file, is converted through JSON.
func DecodePayload[T any](payload any) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode payload as %T: %w", out, err)
	}
	return out, nil
}
