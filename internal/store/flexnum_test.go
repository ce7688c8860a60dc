package store

import (
	"encoding/json"
	"testing"
)

func TestNumAcceptsJSONNumber(t *testing.T) {
	var n Num
	if err := json.Unmarshal([]byte("42"), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !n.Valid || n.Value != 42 {
		t.Fatalf("got %+v, want Valid=true Value=42", n)
	}
}

func TestNumAcceptsDecimalString(t *testing.T) {
	var n Num
	if err := json.Unmarshal([]byte(`"17"`), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !n.Valid || n.Value != 17 {
		t.Fatalf("got %+v, want Valid=true Value=17", n)
	}
}

func TestNumAcceptsHexString(t *testing.T) {
	var n Num
	if err := json.Unmarshal([]byte(`"0x2A"`), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !n.Valid || n.Value != 42 {
		t.Fatalf("got %+v, want Valid=true Value=42", n)
	}
}

func TestNumInvalidOnGarbage(t *testing.T) {
	var n Num
	if err := json.Unmarshal([]byte(`"not-a-number"`), &n); err != nil {
		t.Fatalf("unmarshal should not error: %v", err)
	}
	if n.Valid {
		t.Fatalf("got Valid=true for garbage input")
	}
}

func TestNumInvalidOnNull(t *testing.T) {
	var n Num
	if err := json.Unmarshal([]byte(`null`), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Valid {
		t.Fatalf("got Valid=true for null")
	}
}

func TestFlexBoolDefaultsTrueWhenUnset(t *testing.T) {
	var b FlexBool
	if !b.Resolve() {
		t.Fatalf("zero-value FlexBool should resolve true")
	}
}

func TestFlexBoolHonoursExplicitFalse(t *testing.T) {
	var b FlexBool
	if err := json.Unmarshal([]byte(`false`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Resolve() {
		t.Fatalf("explicit false should resolve false")
	}
}

func TestFlexBoolHonoursExplicitTrue(t *testing.T) {
	var b FlexBool
	if err := json.Unmarshal([]byte(`true`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !b.Resolve() {
		t.Fatalf("explicit true should resolve true")
	}
}
