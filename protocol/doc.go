// Package protocol implements the wire format of the Freescale/NXP UTP
// (Update Transfer Protocol) command set.
//
// UTP rides on SCSI generic: every exchange carries a vendor-specific
// 16-byte command descriptor block and an optional host-to-device data
// phase, and the target answers through the 16-byte sense buffer.
//
// # Descriptor Layout
//
//	Offset  Field
//	0       marker (0xF0)
//	1       sub-command (0=Poll, 1=Exec, 3=Put)
//	2-9     reserved, zero
//	10-13   payload size, uint32 little-endian (Exec only)
//	14-15   reserved, zero
//
// # Command Builders
//
// Use the Build* functions to create descriptors:
//
//	cdb := protocol.BuildExecCmd()
//	cdb := protocol.BuildExecWithSizeCmd(uint32(len(image)))
//	cdb := protocol.BuildPutCmd()
//
// # Replies
//
// The reply code sits at byte 13 of the status block:
//
//	reply, err := protocol.ParseReply(status)
//	if reply == protocol.ReplyExit {
//	    return &protocol.ProtocolError{Operation: "exec", Reply: reply}
//	}
//
// Pass means done, Busy means poll again, Exit is terminal.
package protocol
