package protocol

import (
	"encoding/binary"
	"fmt"
)

// Bytes serializes the command into a CommandSize descriptor.
//
// Descriptor structure:
//
//	[MARKER][SUBCMD][RESERVED(8)][SIZE_LE(4)][RESERVED(2)]
//
// Every byte outside the marker, sub-command and size field is zero.
func (c Command) Bytes() []byte {
	cdb := make([]byte, CommandSize)
	cdb[0] = Marker
	cdb[SubCommandOffset] = c.SubCommand
	binary.LittleEndian.PutUint32(cdb[SizeOffset:SizeOffset+SizeFieldLen], c.PayloadSize)
	return cdb
}

// ParseCommand decodes a command descriptor.
// It rejects descriptors of the wrong length, a bad marker, or non-zero reserved bytes.
func ParseCommand(cdb []byte) (Command, error) {
	if len(cdb) != CommandSize {
		return Command{}, fmt.Errorf("invalid descriptor length: got %d bytes, expected %d", len(cdb), CommandSize)
	}
	if cdb[0] != Marker {
		return Command{}, fmt.Errorf("invalid marker: got 0x%02X, expected 0x%02X", cdb[0], Marker)
	}

	for i := SubCommandOffset + 1; i < CommandSize; i++ {
		if i >= SizeOffset && i < SizeOffset+SizeFieldLen {
			continue
		}
		if cdb[i] != 0 {
			return Command{}, fmt.Errorf("reserved byte %d is 0x%02X, expected 0x00", i, cdb[i])
		}
	}

	return Command{
		SubCommand:  cdb[SubCommandOffset],
		PayloadSize: binary.LittleEndian.Uint32(cdb[SizeOffset : SizeOffset+SizeFieldLen]),
	}, nil
}

// BuildPollCmd constructs a Poll descriptor.
// The target answers Busy until the last Exec has finished, then Pass.
func BuildPollCmd() []byte {
	return Command{SubCommand: SubCmdPoll}.Bytes()
}

// BuildExecCmd constructs an Exec descriptor with no size field.
// The command text travels in the data phase.
func BuildExecCmd() []byte {
	return Command{SubCommand: SubCmdExec}.Bytes()
}

// BuildExecWithSizeCmd constructs an Exec descriptor announcing a file upload of size bytes.
// The size is written little-endian at SizeOffset.
func BuildExecWithSizeCmd(size uint32) []byte {
	return Command{SubCommand: SubCmdExec, PayloadSize: size}.Bytes()
}

// BuildPutCmd constructs a Put descriptor. Each Put carries one chunk of at
// most MaxTransferSize bytes.
func BuildPutCmd() []byte {
	return Command{SubCommand: SubCmdPut}.Bytes()
}
