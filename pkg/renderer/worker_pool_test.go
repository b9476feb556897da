package renderer

import "testing"

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		count    int
		expected []RowBand
	}{
		{"Single band", 4, 1, []RowBand{{0, 3, 0}}},
		{"Uneven split", 10, 3, []RowBand{{0, 9, 6}, {1, 5, 3}, {2, 2, 0}}},
		{"More bands than rows", 2, 5, []RowBand{{0, 1, 1}, {1, 0, 0}}},
		{"Zero count", 3, 0, []RowBand{{0, 2, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := SplitRows(tt.height, tt.count)
			if len(bands) != len(tt.expected) {
				t.Fatalf("Expected %d bands, got %d: %v", len(tt.expected), len(bands), bands)
			}
			for i := range bands {
				if bands[i] != tt.expected[i] {
					t.Errorf("Band %d = %+v, want %+v", i, bands[i], tt.expected[i])
				}
			}
		})
	}
}

func TestSplitRows_CoversEveryRowOnce(t *testing.T) {
	for height := 1; height < 40; height++ {
		for count := 1; count < 12; count++ {
			seen := make([]int, height)
			for _, band := range SplitRows(height, count) {
				for j := band.Top; j >= band.Bottom; j-- {
					seen[j]++
				}
			}
			for j, n := range seen {
				if n != 1 {
					t.Fatalf("height %d count %d: row %d covered %d times", height, count, j, n)
				}
			}
		}
	}
}
