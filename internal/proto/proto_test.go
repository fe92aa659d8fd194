package proto

import "testing"

func TestParseBasics(t *testing.T) {
	tests := []struct {
		raw  string
		verb string
		arg  string
	}{
		{"USER alice", "USER", "alice"},
		{"user alice", "USER", "alice"},
		{"JOIN lobby\n", "JOIN", "lobby"},
		{"  SEND lobby hi  ", "SEND", "lobby hi"},
		{"LIRO", "LIRO", ""},
		{"LIRO ", "LIRO", ""},
		{"HELP x", "HELP", "x"},
	}
	for _, tt := range tests {
		cmd, ok := Parse(tt.raw)
		if !ok {
			t.Fatalf("Parse(%q) rejected", tt.raw)
		}
		if cmd.Verb != tt.verb || cmd.Arg != tt.arg {
			t.Errorf("Parse(%q) = %q/%q, want %q/%q", tt.raw, cmd.Verb, cmd.Arg, tt.verb, tt.arg)
		}
	}
}

func TestParseTooShort(t *testing.T) {
	for _, raw := range []string{"", "a", "hi", "abc", "  ab  \n"} {
		if _, ok := Parse(raw); ok {
			t.Errorf("Parse(%q) accepted, want rejection", raw)
		}
	}
}

// A verb glued to its argument drops the fifth character as if it were the
// separator, shifting the argument.
func TestParseMissingSeparatorShiftsArgument(t *testing.T) {
	cmd, ok := Parse("JOINlobby")
	if !ok {
		t.Fatal("Parse rejected glued verb")
	}
	if cmd.Verb != "JOIN" || cmd.Arg != "obby" {
		t.Fatalf("got %q/%q, want JOIN/obby", cmd.Verb, cmd.Arg)
	}

	cmd, ok = Parse("JOINx")
	if !ok || cmd.Verb != "JOIN" || cmd.Arg != "" {
		t.Fatalf("five-byte line: got %q/%q ok=%v, want JOIN with empty arg", cmd.Verb, cmd.Arg, ok)
	}
}

func TestSplitSend(t *testing.T) {
	room, text, ok := SplitSend("lobby hello there")
	if !ok || room != "lobby" || text != "hello there" {
		t.Fatalf("got %q/%q ok=%v", room, text, ok)
	}

	for _, arg := range []string{"", "lobby", "lobby ", " hello"} {
		if _, _, ok := SplitSend(arg); ok {
			t.Errorf("SplitSend(%q) accepted, want rejection", arg)
		}
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"lobby", "a", "room-1", "tabs\tinside"} {
		if !ValidName(name) {
			t.Errorf("ValidName(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "two words", " lead"} {
		if ValidName(name) {
			t.Errorf("ValidName(%q) = true, want false", name)
		}
	}
}

func TestIsExit(t *testing.T) {
	for _, raw := range []string{"EXIT", "exit", "EXIT now", "exit\n"} {
		if !IsExit(raw) {
			t.Errorf("IsExit(%q) = false, want true", raw)
		}
	}
	for _, raw := range []string{"", "EXI", "QUIT", "USER exit"} {
		if IsExit(raw) {
			t.Errorf("IsExit(%q) = true, want false", raw)
		}
	}
}
