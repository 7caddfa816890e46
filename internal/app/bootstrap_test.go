package app

import "testing"

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "8080", want: ":8080"},
		{in: ":8080", want: ":8080"},
		{in: " 9000 ", want: ":9000"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ListenAddr(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ListenAddr(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ListenAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
