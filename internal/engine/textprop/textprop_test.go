package textprop

import (
	"errors"
	"testing"

	"github.com/dshills/textspan/internal/engine/interval"
)

func mustSet(t *testing.T, c interval.Container, start, end interval.Offset, p Props) {
	t.Helper()
	if err := Set(c, start, end, p); err != nil {
		t.Fatalf("set [%d,%d): %v", start, end, err)
	}
}

func checkSpans(t *testing.T, got []Span, want []Span) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d spans %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i].Start != want[i].Start || got[i].End != want[i].End {
			t.Errorf("span %d = [%d,%d), want [%d,%d)",
				i, got[i].Start, got[i].End, want[i].Start, want[i].End)
		}
		if !got[i].Props.Equal(want[i].Props) {
			t.Errorf("span %d props = %v, want %v", i, got[i].Props, want[i].Props)
		}
	}
}

func TestSetSplitsAtBoundaries(t *testing.T) {
	txt := NewText("hello, world")
	mustSet(t, txt, 3, 8, Props{"face": "bold"})

	checkSpans(t, txt.Spans(), []Span{
		{Start: 0, End: 3},
		{Start: 3, End: 8, Props: Props{"face": "bold"}},
		{Start: 8, End: 12},
	})
	if err := interval.Check(txt.Root()); err != nil {
		t.Fatal(err)
	}
}

func TestSetWholeRange(t *testing.T) {
	txt := NewText("abcdef")
	mustSet(t, txt, 0, 6, Props{"lang": "en"})

	checkSpans(t, txt.Spans(), []Span{
		{Start: 0, End: 6, Props: Props{"lang": "en"}},
	})
}

func TestSetInvalidRange(t *testing.T) {
	txt := NewText("abcdef")
	tests := []struct {
		name       string
		start, end interval.Offset
	}{
		{"empty", 2, 2},
		{"inverted", 4, 2},
		{"before start", -1, 3},
		{"past end", 3, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Set(txt, tt.start, tt.end, Props{"k": "v"})
			if !errors.Is(err, ErrRangeInvalid) {
				t.Errorf("err = %v, want ErrRangeInvalid", err)
			}
		})
	}
}

func TestAtAndGet(t *testing.T) {
	txt := NewText("hello, world")
	mustSet(t, txt, 3, 8, Props{"face": "bold", "depth": 2})

	p, err := At(txt, 5)
	if err != nil {
		t.Fatal(err)
	}
	if p["face"] != "bold" || p["depth"] != 2 {
		t.Errorf("At(5) = %v", p)
	}

	p, err = At(txt, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsEmpty() {
		t.Errorf("At(1) = %v, want default", p)
	}

	v, err := Get(txt, 3, "face")
	if err != nil {
		t.Fatal(err)
	}
	if v != "bold" {
		t.Errorf("Get(3) = %v, want bold", v)
	}

	if _, err := At(txt, 12); !errors.Is(err, interval.ErrPositionOutOfRange) {
		t.Errorf("At(end) err = %v, want ErrPositionOutOfRange", err)
	}
}

func TestAddMergesRecords(t *testing.T) {
	txt := NewText("hello, world")
	mustSet(t, txt, 0, 12, Props{"face": "plain"})
	if err := Add(txt, 4, 9, Props{"face": "bold", "note": "x"}); err != nil {
		t.Fatal(err)
	}

	checkSpans(t, txt.Spans(), []Span{
		{Start: 0, End: 4, Props: Props{"face": "plain"}},
		{Start: 4, End: 9, Props: Props{"face": "bold", "note": "x"}},
		{Start: 9, End: 12, Props: Props{"face": "plain"}},
	})
}

func TestRemoveRestoresDefault(t *testing.T) {
	txt := NewText("hello, world")
	mustSet(t, txt, 2, 10, Props{"face": "bold", "note": "x"})
	if err := Remove(txt, 4, 8, "face", "note"); err != nil {
		t.Fatal(err)
	}

	checkSpans(t, txt.Spans(), []Span{
		{Start: 0, End: 2},
		{Start: 2, End: 4, Props: Props{"face": "bold", "note": "x"}},
		{Start: 4, End: 8},
		{Start: 8, End: 10, Props: Props{"face": "bold", "note": "x"}},
		{Start: 10, End: 12},
	})

	n, err := txt.Root().Find(5)
	if err != nil {
		t.Fatal(err)
	}
	if !n.IsDefault() {
		t.Error("stripped span should be default")
	}
}

func TestFlagDerivation(t *testing.T) {
	txt := NewText("guarded text")
	mustSet(t, txt, 0, 7, Props{KeyReadOnly: true, KeyInvisible: true})

	n, err := txt.Root().Find(2)
	if err != nil {
		t.Fatal(err)
	}
	if !n.WriteProtect() {
		t.Error("read-only should set the write-protect flag")
	}
	if n.Visible() {
		t.Error("invisible should clear the visible flag")
	}

	if err := Remove(txt, 0, 7, KeyReadOnly, KeyInvisible); err != nil {
		t.Fatal(err)
	}
	n, err = txt.Root().Find(2)
	if err != nil {
		t.Fatal(err)
	}
	if n.WriteProtect() || !n.Visible() {
		t.Error("flags should reset with their keys")
	}
}

func TestNextAndPrevChange(t *testing.T) {
	txt := NewText("hello, world")
	mustSet(t, txt, 3, 8, Props{"face": "bold"})

	next, ok, err := NextChange(txt, 0)
	if err != nil || !ok || next != 3 {
		t.Errorf("NextChange(0) = %d,%v,%v, want 3,true,nil", next, ok, err)
	}
	next, ok, err = NextChange(txt, 4)
	if err != nil || !ok || next != 8 {
		t.Errorf("NextChange(4) = %d,%v,%v, want 8,true,nil", next, ok, err)
	}
	if _, ok, _ = NextChange(txt, 9); ok {
		t.Error("NextChange in the last run should report none")
	}

	prev, ok, err := PrevChange(txt, 10)
	if err != nil || !ok || prev != 8 {
		t.Errorf("PrevChange(10) = %d,%v,%v, want 8,true,nil", prev, ok, err)
	}
	if _, ok, _ = PrevChange(txt, 1); ok {
		t.Error("PrevChange in the first run should report none")
	}
}

func TestCoalesce(t *testing.T) {
	txt := NewText("hello, world")
	mustSet(t, txt, 2, 5, Props{"face": "bold"})
	mustSet(t, txt, 5, 9, Props{"face": "bold"})
	mustSet(t, txt, 2, 9, Props{}) // clear: spans stay split but default

	if err := Coalesce(txt); err != nil {
		t.Fatal(err)
	}
	checkSpans(t, txt.Spans(), []Span{
		{Start: 0, End: 12},
	})
	if err := interval.Check(txt.Root()); err != nil {
		t.Fatal(err)
	}
}

func TestCoalesceEqualRecords(t *testing.T) {
	txt := NewText("hello, world")
	mustSet(t, txt, 0, 4, Props{"face": "bold"})
	mustSet(t, txt, 4, 9, Props{"face": "bold"})

	if err := Coalesce(txt); err != nil {
		t.Fatal(err)
	}
	checkSpans(t, txt.Spans(), []Span{
		{Start: 0, End: 9, Props: Props{"face": "bold"}},
		{Start: 9, End: 12},
	})
}

func TestSpansWithoutTree(t *testing.T) {
	txt := NewText("plain")
	checkSpans(t, txt.Spans(), []Span{{Start: 0, End: 5}})

	if len(NewText("").Spans()) != 0 {
		t.Error("empty text should report no spans")
	}
}

func TestPropsEqualAndCopy(t *testing.T) {
	a := Props{"face": "bold", "depth": 2}
	b := Props{"face": "bold", "depth": 2}
	if !a.Equal(b) {
		t.Error("equal records reported unequal")
	}
	if a.Equal(Props{"face": "bold"}) {
		t.Error("records of different size reported equal")
	}
	if !Props(nil).Equal(Props{}) {
		t.Error("nil and empty records should be equal")
	}

	cp := a.Copy().(Props)
	cp["face"] = "dim"
	if a["face"] != "bold" {
		t.Error("copy shares storage")
	}
}
