package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("S3cret!pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "S3cret!pw" {
		t.Fatal("HashPassword() returned plaintext")
	}
	if err := ComparePassword(hash, "S3cret!pw"); err != nil {
		t.Errorf("ComparePassword(correct) error = %v", err)
	}
	if err := ComparePassword(hash, "s3cret!pw"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("ComparePassword(wrong) error = %v, want ErrPasswordMismatch", err)
	}
	if err := ComparePassword("not-a-hash", "x"); err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("ComparePassword(corrupt hash) error = %v", err)
	}
}

func TestClampCost(t *testing.T) {
	tests := map[int]int{
		0:                  bcrypt.DefaultCost,
		bcrypt.MinCost - 1: bcrypt.DefaultCost,
		bcrypt.MinCost:     bcrypt.MinCost,
		11:                 11,
		bcrypt.MaxCost + 5: bcrypt.MaxCost,
	}
	for in, want := range tests {
		if got := ClampCost(in); got != want {
			t.Errorf("ClampCost(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPasswordByteLimit(t *testing.T) {
	// 44 runes but 84 bytes.
	multibyte := "Ab1@" + strings.Repeat("é", 40)

	if _, err := HashPassword(multibyte, bcrypt.MinCost); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("HashPassword(84 bytes) error = %v, want ErrPasswordTooLong", err)
	}
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost); err != nil {
		t.Errorf("HashPassword(72 bytes) error = %v", err)
	}

	hash, err := HashPassword("S3cret!pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := ComparePassword(hash, multibyte); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("ComparePassword(too long) error = %v, want ErrPasswordMismatch", err)
	}
}
