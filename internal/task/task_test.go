package task

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		ok    bool
	}{
		{"now", StatusNow, true},
		{"next", StatusNext, true},
		{"waiting", StatusWaiting, true},
		{"someday", StatusSomeday, true},
		{"done", StatusDone, true},
		{"", "", false},
		{"Now", "", false},
		{"archived", "", false},
		{"done ", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStatus(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseStatus(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStatusFromStored_DefaultsToNext(t *testing.T) {
	if got := StatusFromStored("archived"); got != StatusNext {
		t.Errorf("StatusFromStored(\"archived\") = %q, want %q", got, StatusNext)
	}
	if got := StatusFromStored(""); got != StatusNext {
		t.Errorf("StatusFromStored(\"\") = %q, want %q", got, StatusNext)
	}
	if got := StatusFromStored("waiting"); got != StatusWaiting {
		t.Errorf("StatusFromStored(\"waiting\") = %q, want %q", got, StatusWaiting)
	}
}
