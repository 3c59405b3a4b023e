package buffer

import (
	"errors"
	"sync"
	"testing"

	"github.com/dshills/textspan/internal/engine/textprop"
)

func TestNewBuffer(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.Root() != nil {
		t.Error("new buffer should not carry a tree")
	}
}

func TestNewFromString(t *testing.T) {
	text := "Hello, World!"
	b := NewFromString(text)

	if b.Text() != text {
		t.Errorf("expected %q, got %q", text, b.Text())
	}
	if b.Len() != Offset(len(text)) {
		t.Errorf("expected length %d, got %d", len(text), b.Len())
	}
}

func TestBufferInsert(t *testing.T) {
	tests := []struct {
		name string
		pos  Offset
		s    string
		want string
	}{
		{"interior", 6, ",", "Hello, World"},
		{"at start", 1, ">", ">Hello World"},
		{"at end", 12, "!", "Hello World!"},
		{"empty string", 4, "", "Hello World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString("Hello World")
			if err := b.Insert(tt.pos, tt.s); err != nil {
				t.Fatalf("insert failed: %v", err)
			}
			if b.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Text())
			}
		})
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewFromString("Hello")

	for _, pos := range []Offset{0, -1, 7} {
		if err := b.Insert(pos, "x"); !errors.Is(err, ErrPositionOutOfRange) {
			t.Errorf("insert at %d: err = %v, want ErrPositionOutOfRange", pos, err)
		}
	}
	// Len()+1 is the append position.
	if err := b.Insert(6, "!"); err != nil {
		t.Errorf("insert at end: %v", err)
	}
}

func TestBufferDelete(t *testing.T) {
	b := NewFromString("Hello, World")

	if err := b.Delete(NewRange(6, 8)); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if b.Text() != "HelloWorld" {
		t.Errorf("expected %q, got %q", "HelloWorld", b.Text())
	}

	if err := b.Delete(NewRange(3, 3)); err != nil {
		t.Errorf("empty delete: %v", err)
	}
	if err := b.Delete(NewRange(5, 2)); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("inverted range: err = %v, want ErrRangeInvalid", err)
	}
	if err := b.Delete(NewRange(1, 20)); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("oversized range: err = %v, want ErrPositionOutOfRange", err)
	}
}

func TestBufferSlice(t *testing.T) {
	b := NewFromString("Hello, World")

	s, err := b.Slice(NewRange(1, 6))
	if err != nil {
		t.Fatal(err)
	}
	if s != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", s)
	}

	s, err = b.Slice(NewRange(9, 13))
	if err != nil {
		t.Fatal(err)
	}
	if s != "orld" {
		t.Errorf("expected %q, got %q", "orld", s)
	}

	if _, err := b.Slice(NewRange(0, 4)); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("err = %v, want ErrPositionOutOfRange", err)
	}
}

func TestBufferProperties(t *testing.T) {
	b := NewFromString("Hello, World")

	if err := b.SetProperties(NewRange(4, 9), textprop.Props{"face": "bold"}); err != nil {
		t.Fatal(err)
	}

	p, err := b.PropsAt(5)
	if err != nil {
		t.Fatal(err)
	}
	if p["face"] != "bold" {
		t.Errorf("PropsAt(5) = %v", p)
	}

	v, err := b.PropAt(2, "face")
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Errorf("PropAt(2) = %v, want nil", v)
	}

	spans := b.Spans()
	want := []textprop.Span{
		{Start: 1, End: 4},
		{Start: 4, End: 9, Props: textprop.Props{"face": "bold"}},
		{Start: 9, End: 13},
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans %v, want %d", len(spans), spans, len(want))
	}
	for i := range want {
		if spans[i].Start != want[i].Start || spans[i].End != want[i].End {
			t.Errorf("span %d = [%d,%d), want [%d,%d)",
				i, spans[i].Start, spans[i].End, want[i].Start, want[i].End)
		}
		if !spans[i].Props.Equal(want[i].Props) {
			t.Errorf("span %d props = %v, want %v", i, spans[i].Props, want[i].Props)
		}
	}

	if err := b.CheckIntervals(); err != nil {
		t.Fatal(err)
	}
}

func TestBufferPropertyChanges(t *testing.T) {
	b := NewFromString("Hello, World")
	if err := b.SetProperties(NewRange(4, 9), textprop.Props{"face": "bold"}); err != nil {
		t.Fatal(err)
	}

	next, ok, err := b.NextPropertyChange(1)
	if err != nil || !ok || next != 4 {
		t.Errorf("NextPropertyChange(1) = %d,%v,%v, want 4,true,nil", next, ok, err)
	}
	prev, ok, err := b.PrevPropertyChange(11)
	if err != nil || !ok || prev != 9 {
		t.Errorf("PrevPropertyChange(11) = %d,%v,%v, want 9,true,nil", prev, ok, err)
	}
}

func TestBufferInsertGrowsSpan(t *testing.T) {
	b := NewFromString("hello, world")
	if err := b.SetProperties(NewRange(4, 9), textprop.Props{"face": "bold"}); err != nil {
		t.Fatal(err)
	}

	if err := b.Insert(6, "XX"); err != nil {
		t.Fatal(err)
	}

	spans := b.Spans()
	if len(spans) != 3 {
		t.Fatalf("got %d spans %v, want 3", len(spans), spans)
	}
	if spans[1].Start != 4 || spans[1].End != 11 {
		t.Errorf("bold span = [%d,%d), want [4,11)", spans[1].Start, spans[1].End)
	}
	if b.Root().TotalLength() != b.Len() {
		t.Errorf("tree weight %d, buffer length %d", b.Root().TotalLength(), b.Len())
	}
	if err := b.CheckIntervals(); err != nil {
		t.Fatal(err)
	}
}

func TestBufferDeleteDropsSpan(t *testing.T) {
	b := NewFromString("hello, world")
	if err := b.SetProperties(NewRange(4, 9), textprop.Props{"id": "mid"}); err != nil {
		t.Fatal(err)
	}

	// Removing [3,11) swallows the middle span and trims its neighbors.
	if err := b.Delete(NewRange(3, 11)); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 4 {
		t.Fatalf("length = %d, want 4", b.Len())
	}

	spans := b.Spans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans %v, want 2", len(spans), spans)
	}
	for _, s := range spans {
		if !s.Props.IsEmpty() {
			t.Errorf("span [%d,%d) kept properties %v", s.Start, s.End, s.Props)
		}
	}
	if err := b.CheckIntervals(); err != nil {
		t.Fatal(err)
	}
}

func TestBufferWriteProtect(t *testing.T) {
	b := NewFromString("Hello, World")
	if err := b.SetProperties(NewRange(4, 9), textprop.Props{textprop.KeyReadOnly: true}); err != nil {
		t.Fatal(err)
	}

	if err := b.Insert(5, "x"); !errors.Is(err, ErrWriteProtected) {
		t.Errorf("insert inside protected span: err = %v, want ErrWriteProtected", err)
	}
	// Span boundaries stay writable.
	if err := b.Insert(4, "x"); err != nil {
		t.Errorf("insert at front boundary: %v", err)
	}
	if err := b.Insert(10, "y"); err != nil {
		t.Errorf("insert at rear boundary: %v", err)
	}

	if err := b.Delete(NewRange(3, 7)); !errors.Is(err, ErrWriteProtected) {
		t.Errorf("delete overlapping protected span: err = %v, want ErrWriteProtected", err)
	}
	if err := b.Delete(NewRange(1, 3)); err != nil {
		t.Errorf("delete before protected span: %v", err)
	}
}

func TestBufferCoalesce(t *testing.T) {
	b := NewFromString("hello, world")
	if err := b.SetProperties(NewRange(3, 6), textprop.Props{"face": "bold"}); err != nil {
		t.Fatal(err)
	}
	if err := b.SetProperties(NewRange(6, 10), textprop.Props{"face": "bold"}); err != nil {
		t.Fatal(err)
	}

	if err := b.Coalesce(); err != nil {
		t.Fatal(err)
	}
	spans := b.Spans()
	if len(spans) != 3 {
		t.Fatalf("got %d spans %v, want 3", len(spans), spans)
	}
	if spans[1].Start != 3 || spans[1].End != 10 {
		t.Errorf("merged span = [%d,%d), want [3,10)", spans[1].Start, spans[1].End)
	}
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewFromString("hello, world")
	if err := b.SetProperties(NewRange(3, 8), textprop.Props{"face": "bold"}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Text()
				_ = b.Len()
				if _, err := b.Slice(NewRange(1, 5)); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestBufferEditUnderConcurrentReads(t *testing.T) {
	b := NewFromString("hello, world")
	if err := b.SetProperties(NewRange(3, 8), textprop.Props{"face": "bold"}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					_ = b.Text()
					_ = b.Spans()
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if err := b.Insert(2, "ab"); err != nil {
			t.Error(err)
		}
		if err := b.Delete(NewRange(2, 4)); err != nil {
			t.Error(err)
		}
	}
	close(done)
	wg.Wait()

	if b.Text() != "hello, world" {
		t.Errorf("text = %q after balanced edits", b.Text())
	}
	if err := b.CheckIntervals(); err != nil {
		t.Fatal(err)
	}
}
