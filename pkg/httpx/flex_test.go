package httpx

import (
	"encoding/json"
	"testing"
)

func TestFlex(t *testing.T) {
	var v struct {
		ID      Flex `json:"id"`
		Price   Flex `json:"price"`
		Rating  Flex `json:"rating"`
		Null    Flex `json:"null"`
		Missing Flex `json:"missing"`
	}
	body := `{"id": 4213, "price": "19.99", "rating": 4.65, "null": null}`
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v.ID.String() != "4213" || !v.ID.IsNumber {
		t.Errorf("expected numeric id 4213, got %+v", v.ID)
	}
	if f, ok := v.Price.Float(); !ok || f != 19.99 || v.Price.IsNumber {
		t.Errorf("expected string price parsed to 19.99, got %+v", v.Price)
	}
	if n, ok := v.Rating.Int(); !ok || n != 4 {
		t.Errorf("expected rating truncated to 4, got %d", n)
	}
	if v.Null.Present || v.Missing.Present {
		t.Error("null and missing must not be present")
	}
	if _, ok := v.Missing.Float(); ok {
		t.Error("missing must not parse as a number")
	}
}

func TestFlex_RejectsObjects(t *testing.T) {
	var f Flex
	if err := json.Unmarshal([]byte(`{"a":1}`), &f); err == nil {
		t.Error("expected error for object value")
	}
}

func TestFlex_IntOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		f    Flex
		want int
		ok   bool
	}{
		{"negative", Flex{Text: "-12.7", Present: true}, -12, true},
		{"nan text", Flex{Text: "NaN", Present: true}, 0, false},
		{"inf text", Flex{Text: "Inf", Present: true}, 0, false},
		{"huge text", Flex{Text: "1e30", Present: true}, 0, false},
		{"huge number", Flex{Text: "1e19", Number: 1e19, IsNumber: true, Present: true}, 0, false},
		{"very negative", Flex{Text: "-1e19", Number: -1e19, IsNumber: true, Present: true}, 0, false},
	}
	for _, tc := range cases {
		got, ok := tc.f.Int()
		if got != tc.want || ok != tc.ok {
			t.Errorf("%s: Int() = %d, %v, want %d, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}
