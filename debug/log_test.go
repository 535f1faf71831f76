package debug

import (
	"bytes"
	"testing"
)

type name string

func (n name) String() string { return "name:" + string(n) }

func TestLogf(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	prev := SetOutput(buf)
	defer SetOutput(prev)

	Logf("%s %d %v\n", name("x"), 3, []any{1, "a"})
	want := "name:x 3 [\n   |  1,\n   |  \"a\"\n   |]\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}

	buf.Reset()
	LogAny(map[string]int{"a": 1})
	if got := buf.String(); got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("MORF_TEST_FLAG", "true")
	if !boolEnv("MORF_TEST_FLAG") {
		t.Error("true not parsed")
	}
	t.Setenv("MORF_TEST_FLAG", "nope")
	if boolEnv("MORF_TEST_FLAG") {
		t.Error("garbage parsed as true")
	}
	if boolEnv("MORF_TEST_UNSET_FLAG") {
		t.Error("unset parsed as true")
	}
}
