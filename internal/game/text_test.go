package game

import "testing"

func TestInstructionText(t *testing.T) {
	tests := []struct {
		remaining, initial int
		want               string
	}{
		{3, 3, "Find 3 animals beginning with K"},
		{2, 3, "Find 2 more animals beginning with K"},
		{1, 3, "Find 1 more animal beginning with K"},
		{1, 1, "Find 1 animal beginning with K"},
	}
	for _, tt := range tests {
		if got := InstructionText(tt.remaining, "K", tt.initial); got != tt.want {
			t.Errorf("InstructionText(%d, K, %d) = %q, want %q", tt.remaining, tt.initial, got, tt.want)
		}
	}
}

func TestChancesText(t *testing.T) {
	if got := ChancesText(4, 4); got != "You have 4 chances" {
		t.Errorf("got %q", got)
	}
	if got := ChancesText(1, 4); got != "You have 1 more chance" {
		t.Errorf("got %q", got)
	}
}

func TestEndText(t *testing.T) {
	c := NewController(3, 4)
	c.RecordCorrect()
	c.RecordIncorrect()
	c.RecordIncorrect()
	c.RecordIncorrect() // (2,1): impossible already reached on the third miss
	h, s := EndText(OutcomeLose, c)
	if h != HeaderLose || s != "You found 1 out of 3 animals" {
		t.Fatalf("lose text = %q / %q", h, s)
	}
	h, s = EndText(OutcomeWin, NewController(3, 4))
	if h != HeaderWin || s != "You found all 3 animals!" {
		t.Fatalf("win text = %q / %q", h, s)
	}
	if h, s := EndText(OutcomeContinue, c); h != "" || s != "" {
		t.Fatalf("continue text = %q / %q", h, s)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"fur_seal.png":        "Fur seal",
		"RED-PANDA.png":       "Red panda",
		"koala.png":           "Koala",
		"images/sea_lion.png": "Sea lion",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
