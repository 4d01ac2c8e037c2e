package protocol

import (
	"strings"
	"testing"
)

func statusBlockWith(reply byte) []byte {
	status := make([]byte, StatusBlockSize)
	status[ReplyOffset] = reply
	return status
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name    string
		status  []byte
		want    Reply
		wantErr bool
	}{
		{name: "pass", status: statusBlockWith(0), want: ReplyPass},
		{name: "exit", status: statusBlockWith(1), want: ReplyExit},
		{name: "busy", status: statusBlockWith(2), want: ReplyBusy},
		{name: "size", status: statusBlockWith(3), want: ReplySize},
		{name: "opaque value", status: statusBlockWith(0x7F), want: Reply(0x7F)},
		{
			name: "other bytes are ignored",
			status: func() []byte {
				s := statusBlockWith(2)
				s[0], s[2], s[12], s[14] = 0x70, 0x05, 0xEE, 0xFF
				return s
			}(),
			want: ReplyBusy,
		},
		{name: "short block", status: make([]byte, 13), wantErr: true},
		{name: "nil block", status: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReply(tt.status)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "status block too short") {
					t.Errorf("error = %v, want status block too short", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("ParseReply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReplyString(t *testing.T) {
	tests := []struct {
		reply Reply
		want  string
	}{
		{ReplyPass, "pass"},
		{ReplyExit, "exit"},
		{ReplyBusy, "busy"},
		{ReplySize, "size"},
		{Reply(0x42), "reply(0x42)"},
	}

	for _, tt := range tests {
		if got := tt.reply.String(); got != tt.want {
			t.Errorf("Reply(0x%02X).String() = %q, want %q", byte(tt.reply), got, tt.want)
		}
	}
}

func TestSubCommandName(t *testing.T) {
	if got := SubCommandName(SubCmdPut); got != "put" {
		t.Errorf("SubCommandName(put) = %q", got)
	}
	if got := SubCommandName(0x09); got != "subcmd(0x09)" {
		t.Errorf("SubCommandName(0x09) = %q", got)
	}
}
