package serline

import (
	"bytes"
	"testing"
)

func TestUnstuffLineConditions(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    []byte
		wantBrk []int // indexes expected set in the break vector
	}{
		{
			name: "no escapes unchanged",
			in:   []byte{0x41, 0x42, 0x43},
			want: []byte{0x41, 0x42, 0x43},
		},
		{
			name: "literal FF",
			in:   []byte{0x41, 0xff, 0xff, 0x42},
			want: []byte{0x41, 0xff, 0x42},
		},
		{
			name: "error byte kept",
			in:   []byte{0xff, 0x00, 0x58},
			want: []byte{0x58},
		},
		{
			name: "error byte NUL-adjacent data",
			in:   []byte{0xff, 0x00, 0x58, 0x59},
			want: []byte{0x58, 0x59},
		},
		{
			name:    "break dropped and flagged",
			in:      []byte{0x41, 0xff, 0x00, 0x00, 0x42},
			want:    []byte{0x41, 0x42},
			wantBrk: []int{1},
		},
		{
			name:    "break at start",
			in:      []byte{0xff, 0x00, 0x00, 0x42},
			want:    []byte{0x42},
			wantBrk: []int{0},
		},
		{
			name:    "break at end",
			in:      []byte{0x41, 0xff, 0x00, 0x00},
			want:    []byte{0x41},
			wantBrk: []int{1},
		},
		{
			name: "escaped FF that is error-marked data",
			// FF 00 FF: a literal FF received with a framing error; the
			// kept FF must not restart a sequence with the next byte
			in:   []byte{0xff, 0x00, 0xff, 0x00, 0x41},
			want: []byte{0xff, 0x00, 0x41},
		},
		{
			name:    "multiple sequences in one read",
			in:      []byte{0xff, 0xff, 0x41, 0xff, 0x00, 0x58, 0xff, 0x00, 0x00, 0x42},
			want:    []byte{0xff, 0x41, 0x58, 0x42},
			wantBrk: []int{3},
		},
		{
			name: "adjacent literal FFs",
			in:   []byte{0xff, 0xff, 0xff, 0xff},
			want: []byte{0xff, 0xff},
		},
		{
			name: "trailing FF never starts a sequence",
			in:   []byte{0x41, 0xff},
			want: []byte{0x41, 0xff},
		},
		{
			name: "truncated FF 00 at end left alone",
			in:   []byte{0x41, 0xff, 0x00},
			want: []byte{0x41, 0xff, 0x00},
		},
		{
			name: "empty",
			in:   []byte{},
			want: []byte{},
		},
		{
			name: "single byte",
			in:   []byte{0xff},
			want: []byte{0xff},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, len(tt.in))
			copy(buf, tt.in)
			brk := make([]byte, len(tt.in))

			n := unstuffLineConditions(buf, len(tt.in), brk)
			if n != len(tt.want) {
				t.Errorf("count = %d, want %d", n, len(tt.want))
			}
			if !bytes.Equal(buf[:n], tt.want) {
				t.Errorf("bytes = % x, want % x", buf[:n], tt.want)
			}

			wantBrk := make([]byte, len(tt.in))
			for _, i := range tt.wantBrk {
				wantBrk[i] = 1
			}
			if !bytes.Equal(brk, wantBrk) {
				t.Errorf("break vector = %v, want %v", brk, wantBrk)
			}
		})
	}
}

func TestUnstuffIdempotentWithoutMarkers(t *testing.T) {
	in := []byte("the quick brown fox jumps over the lazy dog\r\n")
	buf := make([]byte, len(in))
	copy(buf, in)
	brk := make([]byte, len(in))

	n := unstuffLineConditions(buf, len(in), brk)
	if n != len(in) {
		t.Errorf("count changed: got %d, want %d", n, len(in))
	}
	if !bytes.Equal(buf[:n], in) {
		t.Errorf("buffer changed: got %q, want %q", buf[:n], in)
	}
	for i, b := range brk {
		if b != 0 {
			t.Errorf("break vector entry %d set without a BREAK", i)
		}
	}
}

func TestMarkBreakGuess(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"first NUL flagged", []byte{0x41, 0x00, 0x42}, 1},
		{"no NUL falls back to zero", []byte{0x41, 0x42}, 0},
		{"NUL at start", []byte{0x00, 0x41}, 0},
		{"empty buffer", []byte{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brk := make([]byte, 8)
			markBreakGuess(tt.in, len(tt.in), brk)
			for i, b := range brk {
				want := byte(0)
				if i == tt.want {
					want = 1
				}
				if b != want {
					t.Errorf("brk[%d] = %d, want %d", i, b, want)
				}
			}
		})
	}
}
