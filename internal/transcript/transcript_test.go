package transcript

import "testing"

func TestAppendAndReveal(t *testing.T) {
	tr := New()
	tr.Append("echo")
	idx := tr.Begin()
	if idx != 1 || tr.Len() != 2 {
		t.Fatalf("Begin index = %d, len = %d", idx, tr.Len())
	}
	tr.AppendToLast("<p>")
	tr.AppendToLast("hi")
	last, ok := tr.Last()
	if !ok || last != "<p>hi" {
		t.Fatalf("Last = %q, %v", last, ok)
	}
	first, _ := tr.Entry(0)
	if first != "echo" {
		t.Fatalf("first entry changed: %q", first)
	}
}

func TestVersionTracksMutations(t *testing.T) {
	tr := New()
	v0 := tr.Version()
	tr.Append("a")
	tr.AppendToLast("b")
	if tr.Version() != v0+2 {
		t.Fatalf("version = %d, want %d", tr.Version(), v0+2)
	}
	tr.AppendToLast("")
	if tr.Version() != v0+2 {
		t.Fatalf("empty append must not bump version")
	}
}

func TestClear(t *testing.T) {
	tr := New()
	tr.Append("a")
	tr.Append("b")
	g := tr.Generation()
	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("Len after Clear = %d", tr.Len())
	}
	if tr.Generation() != g+1 {
		t.Fatalf("generation not bumped")
	}
	if _, ok := tr.Last(); ok {
		t.Fatalf("Last on empty transcript should report false")
	}
	tr.AppendToLast("x")
	if tr.Len() != 0 {
		t.Fatalf("AppendToLast on empty transcript must be a no-op")
	}
}

func TestEntriesIsCopy(t *testing.T) {
	tr := New()
	tr.Append("a")
	e := tr.Entries()
	e[0] = "z"
	if got, _ := tr.Entry(0); got != "a" {
		t.Fatalf("Entries leaked internal slice")
	}
}
