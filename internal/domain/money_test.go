package domain

import (
	"encoding/json"
	"testing"
)

func TestMoneyRounding(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0.00"},
		{"1", "1.00"},
		{"2.004", "2.00"},
		{"2.005", "2.01"}, // half away from zero
		{"2.675", "2.68"},
		{"-2.005", "-2.01"},
		{"-2.004", "-2.00"},
		{"120.25", "120.25"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := MoneyFromString(tt.input)
			if err != nil {
				t.Fatalf("MoneyFromString(%q) error: %v", tt.input, err)
			}
			if got := m.String(); got != tt.want {
				t.Errorf("MoneyFromString(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyFromString_Malformed(t *testing.T) {
	if _, err := MoneyFromString("not-a-number"); err == nil {
		t.Fatal("expected error for malformed amount")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MoneyFromFloat(100.00)
	b := MoneyFromFloat(25.50)

	if got := a.Add(b).String(); got != "125.50" {
		t.Errorf("Add = %s, want 125.50", got)
	}
	if got := a.Sub(b).String(); got != "74.50" {
		t.Errorf("Sub = %s, want 74.50", got)
	}
	if !b.Sub(a).IsNegative() {
		t.Error("25.50 - 100.00 should be negative")
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering is wrong")
	}
}

func TestMoneyExceedsCap(t *testing.T) {
	if MoneyFromFloat(1_000_000_000).ExceedsCap() {
		t.Error("exactly 1e9 should not exceed the cap")
	}
	cap, _ := MoneyFromString("1000000000.01")
	if !cap.ExceedsCap() {
		t.Error("1e9 + 0.01 should exceed the cap")
	}
}

func TestMoneyJSON(t *testing.T) {
	m := MoneyFromFloat(19.99)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"19.99"` {
		t.Errorf("marshal = %s, want \"19.99\"", data)
	}

	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("round trip = %s, want %s", back, m)
	}

	// Bare JSON numbers are accepted too.
	var fromNumber Money
	if err := json.Unmarshal([]byte(`42.5`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber.String() != "42.50" {
		t.Errorf("unmarshal number = %s, want 42.50", fromNumber)
	}
}
