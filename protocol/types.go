package protocol

import "fmt"

// Reply is the one-byte UTP reply code the target writes into the status block.
type Reply byte

// Reply codes reported by the target.
const (
	// ReplyPass indicates the command completed
	ReplyPass Reply = 0x00

	// ReplyExit indicates a terminal condition on the target
	ReplyExit Reply = 0x01

	// ReplyBusy indicates the command is still running
	ReplyBusy Reply = 0x02

	// ReplySize notifies the host of a size value; unused by this client
	ReplySize Reply = 0x03
)

// String returns the reply name, e.g. "pass" or "busy".
func (r Reply) String() string {
	switch r {
	case ReplyPass:
		return "pass"
	case ReplyExit:
		return "exit"
	case ReplyBusy:
		return "busy"
	case ReplySize:
		return "size"
	default:
		return fmt.Sprintf("reply(0x%02X)", byte(r))
	}
}

// Command is the decoded form of a 16-byte UTP command descriptor.
// Only Exec uses PayloadSize; it is zero for every other sub-command.
type Command struct {
	// SubCommand is one of SubCmdPoll, SubCmdExec or SubCmdPut
	SubCommand byte

	// PayloadSize is the announced upload length (Exec only)
	PayloadSize uint32
}

// SubCommandName returns a short lower-case name for a sub-command code.
func SubCommandName(sub byte) string {
	switch sub {
	case SubCmdPoll:
		return "poll"
	case SubCmdExec:
		return "exec"
	case SubCmdPut:
		return "put"
	default:
		return fmt.Sprintf("subcmd(0x%02X)", sub)
	}
}
