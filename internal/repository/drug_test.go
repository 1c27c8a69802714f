package repository

import "testing"

func TestOrderedPair(t *testing.T) {
	tests := []struct {
		a, b         int64
		want1, want2 int64
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{5, 5, 5, 5},
	}
	for _, tt := range tests {
		got1, got2 := orderedPair(tt.a, tt.b)
		if got1 != tt.want1 || got2 != tt.want2 {
			t.Errorf("orderedPair(%d, %d) = (%d, %d), want (%d, %d)",
				tt.a, tt.b, got1, got2, tt.want1, tt.want2)
		}
	}
}
