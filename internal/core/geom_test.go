package core

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
		empty    bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:  "non-overlapping horizontal",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(15, 0, 10, 10),
			empty: true,
		},
		{
			name:  "adjacent vertical (no overlap)",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(0, 10, 10, 10),
			empty: true,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: NewRect(5, 5, 5, 5),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Intersect(tc.b)
			if tc.empty {
				if !got.Empty() {
					t.Errorf("Intersect() = %+v, expected empty", got)
				}
				return
			}
			if got != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.expected)
			}
			// Also test symmetry
			if rev := tc.b.Intersect(tc.a); rev != tc.expected {
				t.Errorf("Intersect() (reversed) = %+v, expected %+v", rev, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 6).Inset(1)
	if r != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", r)
	}

	tiny := NewRect(0, 0, 1, 1).Inset(2)
	if !tiny.Empty() {
		t.Errorf("Inset past zero should be empty, got %+v", tiny)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
