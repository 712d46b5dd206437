package sim

import (
	"slices"
	"testing"
)

func TestSubmitRunsImmediatelyWhenIdle(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.Submit("one", func() { ran = true })
	if !ran {
		t.Errorf("work did not run before Submit returned")
	}
	if s.Pending() != 0 || s.Done() != 1 {
		t.Errorf("pending=%d done=%d, expected 0 and 1", s.Pending(), s.Done())
	}
}

func TestNestedSubmitRunsAfterCurrentItem(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Submit("outer", func() {
		order = append(order, "outer start")
		s.Submit("first", func() {
			order = append(order, "first")
			s.Submit("third", func() { order = append(order, "third") })
		})
		s.Submit("second", func() { order = append(order, "second") })
		if s.Pending() != 2 {
			t.Errorf("Pending() = %d inside outer, expected 2", s.Pending())
		}
		order = append(order, "outer end")
	})

	expected := []string{"outer start", "outer end", "first", "second", "third"}
	if !slices.Equal(order, expected) {
		t.Errorf("order = %v, expected %v", order, expected)
	}
}

func TestPanicDoesNotStallQueue(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.Submit("boom", func() {
		s.Submit("after", func() { ran = true })
		panic("boom")
	})
	if !ran {
		t.Errorf("work queued before a panic did not run")
	}

	ran = false
	s.Submit("later", func() { ran = true })
	if !ran {
		t.Errorf("scheduler stuck after a panic")
	}
	if s.Done() != 3 {
		t.Errorf("Done() = %d, expected 3", s.Done())
	}
}

func TestNilWorkIgnored(t *testing.T) {
	s := NewScheduler()
	s.Submit("nil", nil)
	if s.Done() != 0 || s.Pending() != 0 {
		t.Errorf("nil work was recorded")
	}
}
