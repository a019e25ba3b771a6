package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	gokeyring.MockInit()

	testToken := "ghp_testtoken123"

	if err := SetToken(testToken); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	retrieved, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}
	if retrieved != testToken {
		t.Errorf("GetToken() = %q, want %q", retrieved, testToken)
	}
}

func TestSetTokenEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken(""); err == nil {
		t.Error("SetToken(\"\") should return an error")
	}
}

func TestGetTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteToken()

	if _, err := GetToken(); err != ErrNotFound {
		t.Errorf("GetToken() error = %v, want %v", err, ErrNotFound)
	}
}

func TestAdminPasswordRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAdminPassword("vault2026"); err != nil {
		t.Fatalf("SetAdminPassword() failed: %v", err)
	}

	got, err := GetAdminPassword()
	if err != nil {
		t.Fatalf("GetAdminPassword() failed: %v", err)
	}
	if got != "vault2026" {
		t.Errorf("GetAdminPassword() = %q, want %q", got, "vault2026")
	}

	if err := DeleteAdminPassword(); err != nil {
		t.Fatalf("DeleteAdminPassword() failed: %v", err)
	}
	if _, err := GetAdminPassword(); err != ErrNotFound {
		t.Errorf("GetAdminPassword() after delete error = %v, want %v", err, ErrNotFound)
	}
}
