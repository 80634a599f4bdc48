package types

import "testing"

func TestDirection(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{DirUnknown, "unknown"},
		{DirInbound, "inbound"},
		{DirOutbound, "outbound"},
		{Direction(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("Direction(%d).String() = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestProtocolID(t *testing.T) {
	p := ProtocolID("/echo/1.0.0")

	if p.String() != "/echo/1.0.0" {
		t.Errorf("String() = %q, want %q", p.String(), "/echo/1.0.0")
	}
	if p.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !ProtocolID("").IsEmpty() {
		t.Error("IsEmpty() = false for empty ID, want true")
	}
	if got := p.Version(); got != "1.0.0" {
		t.Errorf("Version() = %q, want %q", got, "1.0.0")
	}
	if got := p.Name(); got != "/echo" {
		t.Errorf("Name() = %q, want %q", got, "/echo")
	}
}
