package pagination

import "testing"

func TestCursor_EncodeDecode(t *testing.T) {
	original := &Cursor{LogDate: "2024-01-15"}

	encoded := original.Encode()
	if encoded == "" {
		t.Fatal("Encode() returned empty string")
	}

	decoded, err := DecodeCursor(encoded)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if decoded.LogDate != original.LogDate {
		t.Errorf("LogDate = %s, want %s", decoded.LogDate, original.LogDate)
	}
}

func TestDecodeCursor_Empty(t *testing.T) {
	cursor, err := DecodeCursor("")
	if err != nil {
		t.Errorf("DecodeCursor(\"\") error = %v", err)
	}
	if cursor != nil {
		t.Errorf("DecodeCursor(\"\") = %v, want nil", cursor)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	if _, err := DecodeCursor("not-valid-base64!!!"); err == nil {
		t.Error("DecodeCursor(invalid) expected error")
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{100, 100},
		{500, MaxLimit},
	}

	for _, tt := range tests {
		if got := NormalizeLimit(tt.in); got != tt.want {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
