package dto

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

func TestStrongPassword(t *testing.T) {
	tests := map[string]bool{
		"Ab1@x":      true,
		"Passw0rd!":  true,
		"Ab1@":       false,
		"password1!": false,
		"PASSWORD1!": false,
		"Password!!": false,
		"Password11": false,
		"":           false,
	}
	for in, want := range tests {
		if got := StrongPassword(in); got != want {
			t.Errorf("StrongPassword(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidate_UserRegisterRequest(t *testing.T) {
	valid := UserRegisterRequest{Username: "ann@aueb.gr", Password: "Passw0rd!", Firstname: "Ann", Lastname: "Smith"}
	if err := Validate(valid); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	withRole := valid
	withRole.Role = "admin"
	if err := Validate(withRole); err != nil {
		t.Errorf("lowercase role rejected: %v", err)
	}

	bad := UserRegisterRequest{Username: "not-an-email", Password: "weak", Role: "ROOT"}
	err := Validate(bad)
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != apperrors.CodeValidationFailed {
		t.Fatalf("Validate(bad) = %v", err)
	}
	fields, _ := derr.Details["fields"].(map[string]any)
	for _, name := range []string{"username", "password", "firstname", "lastname", "role"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("missing field error for %s: %v", name, fields)
		}
	}
}

func TestValidate_AuthenticateRequest(t *testing.T) {
	if err := Validate(AuthenticateRequest{Username: "ann", Password: "x"}); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := Validate(AuthenticateRequest{}); err == nil {
		t.Error("empty credentials accepted")
	}
}

func TestValidate_PasswordByteLimit(t *testing.T) {
	multibyte := "Ab1@" + strings.Repeat("é", 40)

	err := Validate(UserRegisterRequest{Username: "ann@aueb.gr", Password: multibyte, Firstname: "Ann", Lastname: "Smith"})
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != apperrors.CodeValidationFailed {
		t.Fatalf("Validate(84-byte password) = %v", err)
	}
	fields, _ := derr.Details["fields"].(map[string]any)
	if fields["password"] != "must be at most 72 bytes" {
		t.Errorf("password field error = %v", fields["password"])
	}

	if err := Validate(AuthenticateRequest{Username: "ann", Password: multibyte}); err == nil {
		t.Error("84-byte login password accepted")
	}
	if err := Validate(AuthenticateRequest{Username: "ann", Password: strings.Repeat("é", 36)}); err != nil {
		t.Errorf("72-byte login password rejected: %v", err)
	}
}
