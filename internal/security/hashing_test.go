package security

import (
	"testing"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4)
	hash, err := h.Hash("secret-password-1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "secret-password-1" {
		t.Fatal("hash empty or equal to plaintext")
	}
	if err := h.Compare(hash, "secret-password-1"); err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if err := h.Compare(hash, "wrong-password"); err == nil {
		t.Fatal("Compare with wrong password must fail")
	}
}

func TestHasher_CostClamping(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{12, 12},
		{0, 10},  // bcrypt.DefaultCost
		{-3, 10}, // bcrypt.DefaultCost
		{2, 4},   // bcrypt.MinCost
		{99, 31}, // bcrypt.MaxCost
	}
	for _, tc := range tests {
		if got := NewHasher(tc.in).Cost(); got != tc.want {
			t.Errorf("NewHasher(%d).Cost() = %d, want %d", tc.in, got, tc.want)
		}
	}
}
