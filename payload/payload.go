package payload

// Payload is a fully buffered file to be uploaded to the target.
type Payload struct {
	// Name identifies the source of the data, usually the file path
	Name string

	// Data is the complete file contents
	Data []byte
}

// New wraps data that is already in memory.
func New(name string, data []byte) *Payload {
	return &Payload{Name: name, Data: data}
}

// Len returns the payload length in bytes.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}
