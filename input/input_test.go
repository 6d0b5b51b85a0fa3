package input

import "testing"

func TestSetKeyClearsBit(t *testing.T) {
	k := NewKeyboardMatrix()
	if k.Row(1) != 0xff {
		t.Fatalf("Row(1) = 0x%.2X, want 0xff before any key press", k.Row(1))
	}
	k.SetKey(1, 2, true) // 'A'
	if k.Row(1)&(1<<2) != 0 {
		t.Errorf("expected bit 2 of row 1 clear once 'A' is pressed")
	}
	k.SetKey(1, 2, false)
	if k.Row(1)&(1<<2) == 0 {
		t.Errorf("expected bit 2 of row 1 set again once 'A' is released")
	}
}

func TestEnqueueDrainsPressThenRelease(t *testing.T) {
	k := NewKeyboardMatrix()
	k.Enqueue("A")
	if !k.HasEvents() {
		t.Fatalf("expected a queued event after Enqueue")
	}
	k.DrainEvent() // press
	if k.Row(1)&(1<<2) != 0 {
		t.Errorf("expected 'A' pressed after first DrainEvent")
	}
	if !k.HasEvents() {
		t.Fatalf("expected the release transition still queued")
	}
	k.DrainEvent() // release
	if k.Row(1)&(1<<2) == 0 {
		t.Errorf("expected 'A' released after second DrainEvent")
	}
	if k.HasEvents() {
		t.Errorf("expected queue drained after both transitions")
	}
}

func TestJoystickAxisDeadzone(t *testing.T) {
	j := NewJoystick(JoyPort0, 8000)
	j.OnAxisMotion(0, 20000)
	if j.State()&(1<<ButtonRight) == 0 {
		t.Errorf("expected right bit set past threshold")
	}
	j.OnAxisMotion(0, 100)
	if j.State()&(1<<ButtonRight) != 0 {
		t.Errorf("expected right bit cleared back inside the deadzone")
	}
}

func TestJoystickPortValueActiveLow(t *testing.T) {
	j := NewJoystick(JoyPort0, 8000)
	j.OnButtonDown()
	if v := j.PortValue(); v&(1<<ButtonFire) != 0 {
		t.Errorf("PortValue() = 0x%.2X, want fire bit low (active) when pressed", v)
	}
}
