package video

import "testing"

func TestWriteAndImageRoundTrip(t *testing.T) {
	fb := NewFrameBuffer(4, 2)
	fb.Write(0, 1) // (0,0) white
	fb.Write(5, 2) // (1,1) red
	img := fb.Image()
	if got := img.RGBAAt(0, 0); got != Palette[1] {
		t.Errorf("pixel (0,0) = %v, want %v", got, Palette[1])
	}
	if got := img.RGBAAt(1, 1); got != Palette[2] {
		t.Errorf("pixel (1,1) = %v, want %v", got, Palette[2])
	}
}

func TestTakeSyncClearsFlag(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	fb.SetSync(true)
	if !fb.TakeSync() {
		t.Fatalf("expected TakeSync to report true once")
	}
	if fb.TakeSync() {
		t.Errorf("expected TakeSync to clear after reading")
	}
}
