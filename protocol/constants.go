package protocol

// Command descriptor layout.
const (
	// Marker is the fixed first byte of every UTP command descriptor (0xF0)
	Marker = 0xF0

	// CommandSize is the length of a command descriptor in bytes
	CommandSize = 0x10

	// SubCommandOffset is the descriptor byte selecting the UTP operation
	SubCommandOffset = 1

	// SizeOffset is where Exec carries the 32-bit little-endian payload size
	SizeOffset = 10

	// SizeFieldLen is the width of the payload size field in bytes
	SizeFieldLen = 4
)

// Sub-command codes carried at SubCommandOffset.
const (
	// SubCmdPoll asks the target whether the last command has finished
	SubCmdPoll byte = 0x00

	// SubCmdExec runs the shell-like command carried in the data phase
	SubCmdExec byte = 0x01

	// SubCmdPut transfers one chunk of file data
	SubCmdPut byte = 0x03
)

// Status block layout.
const (
	// StatusBlockSize is the length of the status (sense) block returned per exchange
	StatusBlockSize = 16

	// ReplyOffset is the status block byte holding the UTP reply code
	ReplyOffset = 13
)

// MaxTransferSize is the largest data phase a single exchange may carry (64 KiB).
// Larger payloads must be split into Put chunks.
const MaxTransferSize = 0x10000
