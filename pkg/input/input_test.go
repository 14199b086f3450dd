package input

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	p, err := Read(strings.NewReader("3 2\n10 20 30\n1 2\n2 3\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(p.Weights) != 3 || p.Weights[2] != 30 {
		t.Errorf("Weights = %v, want [10 20 30]", p.Weights)
	}
	want := []Request{{0, 1}, {1, 2}}
	if len(p.Requests) != len(want) {
		t.Fatalf("Requests = %v, want %v", p.Requests, want)
	}
	for i := range want {
		if p.Requests[i] != want[i] {
			t.Errorf("Requests[%d] = %+v, want %+v", i, p.Requests[i], want[i])
		}
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrTruncated},
		{"missing weights", "3 0\n1 2", ErrTruncated},
		{"missing source", "2 1\n1 1\n1", ErrTruncated},
		{"negative n", "-1 0", ErrNegativeCount},
		{"negative m", "1 -3\n5", ErrNegativeCount},
		{"destination zero", "2 1\n1 1\n0 1", ErrIndexOutOfRange},
		{"source past end", "2 1\n1 1\n1 3", ErrIndexOutOfRange},
		{"not a number", "2 x", strconv.ErrSyntax},
		{"huge request count", "1 4611686018427387904\n5\n", ErrTruncated},
		{"huge element count", "4611686018427387904 0\n", ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Read() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRead_EmptyUniverse(t *testing.T) {
	p, err := Read(strings.NewReader("0 0\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(p.Weights) != 0 || len(p.Requests) != 0 {
		t.Errorf("got %+v, want empty problem", p)
	}

	var out bytes.Buffer
	if err := Run(p, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "three tables",
			input: "3 2\n10 20 30\n1 2\n2 3\n",
			want:  "30\n60\n",
		},
		{
			name:  "unit tables",
			input: "4 3\n1 1 1 1\n1 2\n3 4\n1 3\n",
			want:  "2\n2\n4\n",
		},
		{
			name:  "redundant merges",
			input: "5 5\n2 2 2 2 2\n3 5\n2 4\n1 4\n5 4\n5 3\n",
			want:  "4\n4\n6\n10\n10\n",
		},
		{
			name:  "max weight untouched by merges",
			input: "6 4\n10 0 5 0 3 3\n6 6\n6 5\n5 4\n4 3\n",
			want:  "10\n10\n10\n11\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Read(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			var out bytes.Buffer
			if err := Run(p, &out); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRun_InvalidRequest(t *testing.T) {
	p := &Problem{
		Weights:  []int64{1, 2},
		Requests: []Request{{Destination: 0, Source: 2}},
	}
	var out bytes.Buffer
	if err := Run(p, &out); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Run() error = %v, want ErrIndexOutOfRange", err)
	}
}
