package input

import "testing"

func TestDecodeMouseButtonByteWheel(t *testing.T) {
	button, isWheel, vec, _ := decodeMouseButtonByte(0x40)
	if !isWheel || button != MouseButtonNone {
		t.Fatalf("got button=%v isWheel=%v", button, isWheel)
	}
	if vec.DY != -1 {
		t.Errorf("expected wheel-up to carry DY=-1, got %+v", vec)
	}

	_, isWheel, vec, _ = decodeMouseButtonByte(0x41)
	if !isWheel || vec.DY != 1 {
		t.Errorf("expected wheel-down to carry DY=1, got %+v", vec)
	}

	_, isWheel, vec, _ = decodeMouseButtonByte(0x42)
	if !isWheel || vec.DX != 1 || vec.DY != 0 {
		t.Errorf("expected button 6 to carry a horizontal DX=1 vector, got %+v", vec)
	}

	_, isWheel, vec, _ = decodeMouseButtonByte(0x43)
	if !isWheel || vec.DX != -1 || vec.DY != 0 {
		t.Errorf("expected button 7 to carry a horizontal DX=-1 vector, got %+v", vec)
	}
}

func TestDecodeMouseButtonByteExtraGroup2(t *testing.T) {
	cases := []struct {
		btn  int
		want MouseButton
	}{
		{0x80, MouseButton8},
		{0x81, MouseButton9},
		{0x82, MouseButton10},
		{0x83, MouseButton11},
	}
	for _, tc := range cases {
		button, isWheel, _, _ := decodeMouseButtonByte(tc.btn)
		if isWheel || button != tc.want {
			t.Errorf("decodeMouseButtonByte(0x%x) = %v, isWheel=%v, want %v", tc.btn, button, isWheel, tc.want)
		}
	}
}

func TestDecodeMouseButtonByteModifiers(t *testing.T) {
	_, _, _, mods := decodeMouseButtonByte(0x0c) // left + shift + meta, no ctrl
	if !mods.Has(ModShift) || !mods.Has(ModMeta) || mods.Has(ModCtrl) {
		t.Errorf("got mods=%v", mods)
	}
}

func TestURXVTMouseRoundTrip(t *testing.T) {
	d := NewDecoder()
	ev, ok, n := d.tryParseURXVTMouse("\x1b[0;5;7M")
	if !ok {
		t.Fatal("expected a match")
	}
	press, ok := ev.(MousePress)
	if !ok || press.Position.X != 4 || press.Position.Y != 6 {
		t.Errorf("got %+v", ev)
	}
	if n != len("\x1b[0;5;7M") {
		t.Errorf("consumed %d, want %d", n, len("\x1b[0;5;7M"))
	}
}

func TestDECLocatorPressAndMotion(t *testing.T) {
	d := NewDecoder()
	ev, ok, _ := d.tryParseDECLocator("\x1b[1;2;10;20;0&w")
	if !ok {
		t.Fatal("expected a match")
	}
	press, ok := ev.(MousePress)
	if !ok || press.Button != MouseButtonLeft || press.State != MouseStatePressed {
		t.Errorf("got %+v", ev)
	}
	if press.Position.X != 19 || press.Position.Y != 9 {
		t.Errorf("position = %+v", press.Position)
	}

	ev, ok, _ = d.tryParseDECLocator("\x1b[3;0;1;1;0&w")
	if !ok {
		t.Fatal("expected a match")
	}
	if _, ok := ev.(MouseMotion); !ok {
		t.Errorf("got %T, want MouseMotion", ev)
	}
}

func TestMouseParsersRejectUnrelatedInput(t *testing.T) {
	d := NewDecoder()
	if _, ok, _ := d.tryParseSGRMouse("\x1b[24;80R"); ok {
		t.Error("SGR parser should not match a cursor-position reply")
	}
	if _, ok, _ := d.tryParseX10Mouse("\x1b[Afoo"); ok {
		t.Error("X10 parser should not match an arrow key")
	}
}
