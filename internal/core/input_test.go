package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionConfirm)
	if !f.Has(ActionConfirm) {
		t.Error("Has(Confirm) should be true after Set")
	}
	if f.Has(ActionRestart) {
		t.Error("Has(Restart) should be false")
	}

	f.Clear()
	if f.Has(ActionConfirm) || !f.Empty() {
		t.Error("Clear should remove all actions")
	}
}

func TestInputFrameClicks(t *testing.T) {
	f := NewInputFrame()
	f.Click(3, 4)
	f.Click(5, 6)

	clone := f.Clone()
	f.Clear()

	if len(f.Clicks) != 0 {
		t.Errorf("Clear left %d clicks", len(f.Clicks))
	}
	if len(clone.Clicks) != 2 || clone.Clicks[0] != (Point{X: 3, Y: 4}) {
		t.Errorf("Clone clicks = %v, expected [(3,4) (5,6)]", clone.Clicks)
	}
}

func TestActionString(t *testing.T) {
	if ActionNextLevel.String() != "NextLevel" {
		t.Errorf("ActionNextLevel.String() = %q", ActionNextLevel.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}

func TestInputFrameIgnoresNone(t *testing.T) {
	var f InputFrame
	f.Set(ActionNone)
	f.Set(Action(99))
	if !f.Empty() || f.Has(ActionNone) {
		t.Error("None and unknown actions must not mark the frame")
	}
}
