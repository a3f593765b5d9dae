package layout

import "testing"

func TestVisibleAuxiliaryCounts(t *testing.T) {
	want := map[Mode]int{Mode1x2: 2, Mode1x3: 3, Mode2x2: 4}
	for m, n := range want {
		got := 0
		for slot := 1; slot < Slots; slot++ {
			if SlotVisible(m, slot) {
				got++
			}
		}
		if got != n {
			t.Fatalf("%s: %d visible aux, want %d", m, got, n)
		}
		if !SlotVisible(m, 0) {
			t.Fatalf("%s: main canvas hidden", m)
		}
	}
}

func TestSlotSizeHiddenSlot(t *testing.T) {
	if _, ok := SlotSize(Mode1x3, 4); ok {
		t.Fatal("slot 4 is hidden in 1x3")
	}
	d, ok := SlotSize(Mode1x3, 3)
	if !ok || d != (Dimensions{400, 300}) {
		t.Fatalf("slot 3 = %v %v", d, ok)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"2x2": Mode2x2, " 1×3 ": Mode1x3, "1X2": Mode1x2} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("3x3"); err == nil {
		t.Fatal("expected error")
	}
}

func TestArrangeCells(t *testing.T) {
	cells := Arrange(Mode2x2, 10)
	if len(cells) != 5 {
		t.Fatalf("cells = %d", len(cells))
	}
	if cells[2].X <= cells[1].X || cells[3].Y <= cells[1].Y {
		t.Fatalf("unexpected grid %+v", cells)
	}
	if got := len(Arrange(Mode1x2, 0)); got != 3 {
		t.Fatalf("1x2 cells = %d", got)
	}
}
