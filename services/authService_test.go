package services

import (
	"errors"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"harvestbook-api/dtos"
	"harvestbook-api/models"
)

type fakeVerifier struct {
	phone string
	err   error
}

func (f *fakeVerifier) VerifyIDToken(idToken string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.phone, nil
}

func TestBridge_ProvisionsNewAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &fakeVerifier{phone: "+91 98450 12345"})

	resp, err := svc.BridgePhoneLogin("token-1")
	if err != nil {
		t.Fatalf("BridgePhoneLogin: %v", err)
	}

	if resp.Email != "919845012345@phone.harvestbook.app" {
		t.Errorf("email = %q, want digits-only synthetic address", resp.Email)
	}
	if resp.Password == "" {
		t.Error("expected a one-time password")
	}

	var user models.User
	if err := db.Where("email = ?", resp.Email).First(&user).Error; err != nil {
		t.Fatalf("account not provisioned: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(resp.Password)); err != nil {
		t.Error("stored hash does not match the returned one-time password")
	}
}

func TestBridge_SamePhoneSameAccountFreshPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &fakeVerifier{phone: "919845012345"})

	first, err := svc.BridgePhoneLogin("token-1")
	if err != nil {
		t.Fatalf("first bridge: %v", err)
	}
	second, err := svc.BridgePhoneLogin("token-2")
	if err != nil {
		t.Fatalf("second bridge: %v", err)
	}

	if first.Email != second.Email {
		t.Errorf("emails differ: %q vs %q", first.Email, second.Email)
	}
	if first.Password == second.Password {
		t.Error("one-time passwords must differ between bridge calls")
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", first.Email).Count(&count)
	if count != 1 {
		t.Errorf("accounts = %d, want 1", count)
	}

	// only the latest password works
	var user models.User
	db.Where("email = ?", first.Email).First(&user)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(second.Password)); err != nil {
		t.Error("latest one-time password rejected")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(first.Password)); err == nil {
		t.Error("rotated-out password still accepted")
	}
}

func TestBridge_InvalidToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &fakeVerifier{err: errors.New("token expired")})

	_, err := svc.BridgePhoneLogin("bad-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestBridge_MissingPhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &fakeVerifier{phone: "n/a"})

	_, err := svc.BridgePhoneLogin("token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken when token has no phone", err)
	}
}

func TestBridgeThenLogin(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	db := newTestDB(t)
	svc := NewAuthService(db, &fakeVerifier{phone: "919845012345"})

	bridge, err := svc.BridgePhoneLogin("token")
	if err != nil {
		t.Fatalf("bridge: %v", err)
	}

	resp, err := svc.Login(dtos.LoginInput{Email: bridge.Email, Password: bridge.Password})
	if err != nil {
		t.Fatalf("login with bridged credentials: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}

	// wrong password still rejected
	if _, err := svc.Login(dtos.LoginInput{Email: bridge.Email, Password: "nope"}); err == nil {
		t.Error("login with wrong password succeeded")
	}
}

func TestSyntheticEmail_Deterministic(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"+91 98450 12345", "919845012345@phone.harvestbook.app"},
		{"919845012345", "919845012345@phone.harvestbook.app"},
		{"(91) 98450-12345", "919845012345@phone.harvestbook.app"},
	}

	for _, tc := range cases {
		if got := SyntheticEmail(tc.in); got != tc.want {
			t.Errorf("SyntheticEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
