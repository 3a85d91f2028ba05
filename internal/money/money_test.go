package money

import "testing"

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice float64
		want      float64
	}{
		{"whole amounts", 2, 10.00, 20.00},
		{"cents", 1, 5.50, 5.50},
		{"rounds half up", 2, 5.005, 10.01},
		{"rounds down", 3, 3.333, 10.00},
		{"zero price", 4, 0, 0},
		{"repeating binary fraction", 3, 0.1, 0.30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemTotal(tt.quantity, tt.unitPrice); got != tt.want {
				t.Errorf("ItemTotal(%d, %v) = %v, want %v", tt.quantity, tt.unitPrice, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.34", 12.34},
		{" 12.34 ", 12.34},
		{"12", 12},
		{"", 0},
		{"12.", 12},
		{".5", 0.5},
		{"abc", 0},
		{"12,34", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSum(t *testing.T) {
	if got := Sum(20.00, 5.50); got != 25.50 {
		t.Errorf("Sum = %v, want 25.50", got)
	}
	if got := Sum(); got != 0 {
		t.Errorf("Sum() = %v, want 0", got)
	}
	// 0.1+0.2 must not leak binary noise into a stored total
	if got := Sum(0.1, 0.2); got != 0.30 {
		t.Errorf("Sum(0.1, 0.2) = %v, want 0.30", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v        float64
		currency string
		want     string
	}{
		{25.5, "USD", "$25.50"},
		{9.99, "EUR", "€9.99"},
		{100, "ZAR", "R100.00"},
		{3.2, "GBP", "£3.20"},
		{-4.5, "USD", "-$4.50"},
		{7, "JPY", "JPY 7.00"},
	}
	for _, tt := range tests {
		if got := Format(tt.v, tt.currency); got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.v, tt.currency, got, tt.want)
		}
	}
}
