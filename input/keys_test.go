package input

import "testing"

func TestModifierFromCSIParam(t *testing.T) {
	cases := []struct {
		param int
		want  Modifier
	}{
		{1, 0},
		{2, ModShift},
		{3, ModMeta},
		{5, ModCtrl},
		{6, ModShift | ModCtrl},
		{8, ModShift | ModMeta | ModCtrl},
		{9, ModMeta},
	}
	for _, tc := range cases {
		if got := modifierFromCSIParam(tc.param); got != tc.want {
			t.Errorf("modifierFromCSIParam(%d) = %v, want %v", tc.param, got, tc.want)
		}
	}
}

func TestClassifyControlByteCtrlLetter(t *testing.T) {
	ks, ok := classifyControlByte(0x18) // Ctrl-X
	if !ok {
		t.Fatal("expected a match")
	}
	if ks.Key != KeyRune || !ks.Ctrl || ks.Rune != 'x' {
		t.Errorf("got %+v", ks)
	}
}

func TestKeyString(t *testing.T) {
	if KeyF5.String() != "F5" {
		t.Errorf("KeyF5.String() = %q", KeyF5.String())
	}
	if KeyEnter.String() != "Enter" {
		t.Errorf("KeyEnter.String() = %q", KeyEnter.String())
	}
}
