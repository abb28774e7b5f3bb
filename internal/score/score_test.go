package score

import "testing"

func TestFromPercentageBands(t *testing.T) {
	cases := []struct {
		pct  float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{10, 0},
		{11, 1},
		{35, 1},
		{36, 2},
		{50, 2},
		{51, 3},
		{65, 3},
		{66, 4},
		{79, 4},
		{80, 5},
		{100, 5},
		{150, 5},
	}

	for _, tc := range cases {
		if got := FromPercentage(tc.pct); got != tc.want {
			t.Errorf("FromPercentage(%.0f) = %d, want %d", tc.pct, got, tc.want)
		}
	}
}

func TestLabelClampsOutOfRange(t *testing.T) {
	if Label(-1) != Label(0) {
		t.Errorf("Label(-1) = %q, want band 0 label", Label(-1))
	}
	if Label(6) != Label(0) {
		t.Errorf("Label(6) = %q, want band 0 label", Label(6))
	}
	if Label(5) != "Отлично" {
		t.Errorf("Label(5) = %q, want Отлично", Label(5))
	}
}

func TestColorClampsOutOfRange(t *testing.T) {
	if Color(-3) != Color(0) {
		t.Error("Color(-3) did not clamp to band 0")
	}
	if Color(99) != Color(0) {
		t.Error("Color(99) did not clamp to band 0")
	}
}
