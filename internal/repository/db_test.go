package repository

import "testing"

func TestMarshalListNil(t *testing.T) {
	raw, err := marshalList(nil)
	if err != nil {
		t.Fatalf("marshalList(nil) unexpected error: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("marshalList(nil) = %q, want []", raw)
	}
}

func TestListRoundTrip(t *testing.T) {
	raw, err := marshalList([]string{"a", "b"})
	if err != nil {
		t.Fatalf("marshalList() unexpected error: %v", err)
	}

	var out []string
	if err := unmarshalList(raw, &out); err != nil {
		t.Fatalf("unmarshalList() unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != "a" || out[1] != "b" {
		t.Errorf("round trip = %v, want [a b]", out)
	}
}

func TestUnmarshalListEmptyColumn(t *testing.T) {
	var out []string
	if err := unmarshalList(nil, &out); err != nil {
		t.Fatalf("unmarshalList(nil) unexpected error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("unmarshalList(nil) = %v, want empty slice", out)
	}
}
