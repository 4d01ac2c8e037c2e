package protocol

import "fmt"

// ParseReply extracts the reply code from a status block.
//
// The status block is StatusBlockSize bytes; only ReplyOffset is
// interpreted, the rest is free-form target diagnostics.
func ParseReply(status []byte) (Reply, error) {
	if len(status) < StatusBlockSize {
		return 0, fmt.Errorf("status block too short: got %d bytes, minimum is %d", len(status), StatusBlockSize)
	}

	return Reply(status[ReplyOffset]), nil
}
