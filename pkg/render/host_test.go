package render

import "testing"

func TestScreenWritePixelBigEndianLayout(t *testing.T) {
	s := Screen{
		Buffer:        make([]byte, 4),
		Width:         1,
		Height:        1,
		Pitch:         4,
		BytesPerPixel: 4,
	}
	s.WritePixel(0, 0, Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44})

	want := []byte{0x11, 0x22, 0x33, 0x44}
	for i, b := range want {
		if s.Buffer[i] != b {
			t.Errorf("Buffer[%d] = %#x, want %#x", i, s.Buffer[i], b)
		}
	}
}

func TestScreenWritePixelOutOfBoundsIgnored(t *testing.T) {
	s := Screen{Buffer: make([]byte, 4), Width: 1, Height: 1, Pitch: 4, BytesPerPixel: 4}
	s.WritePixel(1, 0, ColorWhite)
	for i, b := range s.Buffer {
		if b != 0 {
			t.Errorf("Buffer[%d] = %#x, want 0 (write should have been rejected)", i, b)
		}
	}
}

func TestBlitCopiesFramebufferIntoScreen(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(1, 1, ColorBlue)

	s := Screen{
		Buffer:        make([]byte, 2*2*4),
		Width:         2,
		Height:        2,
		Pitch:         2 * 4,
		BytesPerPixel: 4,
	}
	Blit(fb, s)

	if s.Buffer[0] != ColorRed.R || s.Buffer[1] != ColorRed.G || s.Buffer[2] != ColorRed.B {
		t.Errorf("top-left pixel = %v, want red", s.Buffer[0:4])
	}
	bottomRight := 3 * 4 // row 1, col 1
	if s.Buffer[bottomRight] != ColorBlue.R || s.Buffer[bottomRight+2] != ColorBlue.B {
		t.Errorf("bottom-right pixel = %v, want blue", s.Buffer[bottomRight:bottomRight+4])
	}
}
