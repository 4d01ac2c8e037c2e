package protocol

import (
	"errors"
	"fmt"
)

// ProtocolError represents a terminal Exit reply from the target.
type ProtocolError struct {
	// Operation is the sub-command that received the reply
	Operation string

	// Reply is the reply code from the status block
	Reply Reply
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: target replied %s (0x%02X)", e.Operation, e.Reply, byte(e.Reply))
}

// IsProtocolError returns true if err is or wraps a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
