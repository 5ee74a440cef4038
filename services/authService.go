package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"harvestbook-api/dtos"
	"harvestbook-api/models"
	"harvestbook-api/utils"
)

// Accounts are keyed by a synthetic email derived from the verified
// phone number, since the backend only speaks email/password natively.
const phoneAccountDomain = "phone.harvestbook.app"

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrAuthBridge   = errors.New("failed to provision account")
)

// PhoneVerifier checks an identity token with the OTP provider and
// returns the verified phone number (digits only).
type PhoneVerifier interface {
	VerifyIDToken(idToken string) (string, error)
}

type AuthService interface {
	Login(input dtos.LoginInput) (*dtos.AuthResponse, error)
	BridgePhoneLogin(idToken string) (*dtos.BridgeResponse, error)
}

type authService struct {
	db       *gorm.DB
	verifier PhoneVerifier
}

func NewAuthService(db *gorm.DB, verifier PhoneVerifier) AuthService {
	return &authService{db: db, verifier: verifier}
}

func (s *authService) Login(input dtos.LoginInput) (*dtos.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return nil, errors.New("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, errors.New("Incorrect password")
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, errors.New("Failed to generate token")
	}

	return &dtos.AuthResponse{
		Message: "Login successful",
		Token:   token,
	}, nil
}

// SyntheticEmail maps a phone number to its backend account identifier.
// The same phone always yields the same address.
func SyntheticEmail(phone string) string {
	return utils.NormalizePhone(phone) + "@" + phoneAccountDomain
}

// BridgePhoneLogin exchanges a verified phone-identity token for
// email/password credentials:
//  1. verify the token with the OTP provider,
//  2. derive the synthetic account email from the phone number,
//  3. create the account with a fresh one-time password, or rotate the
//     password of the existing one,
//  4. hand both back so the client performs a normal password login.
func (s *authService) BridgePhoneLogin(idToken string) (*dtos.BridgeResponse, error) {
	phone, err := s.verifier.VerifyIDToken(idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if utils.NormalizePhone(phone) == "" {
		return nil, fmt.Errorf("%w: no phone number in token", ErrInvalidToken)
	}

	email := SyntheticEmail(phone)

	oneTime, err := utils.GenerateOneTimePassword()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthBridge, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(oneTime), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthBridge, err)
	}

	var user models.User
	err = s.db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		// Existing account: rotate the password to the new one-time value.
		if err := s.db.Model(&user).Update("password", string(hash)).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuthBridge, err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:    email,
			Password: string(hash),
			Phone:    utils.NormalizePhone(phone),
			Name:     "Operator",
		}
		if err := s.db.Create(&user).Error; err != nil {
			// Two devices bridging the same phone can race on the unique
			// email index; fall back to rotating the winner's password.
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate") || strings.Contains(low, "unique") {
				if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
					return nil, fmt.Errorf("%w: %v", ErrAuthBridge, err)
				}
				if err := s.db.Model(&user).Update("password", string(hash)).Error; err != nil {
					return nil, fmt.Errorf("%w: %v", ErrAuthBridge, err)
				}
			} else {
				return nil, fmt.Errorf("%w: %v", ErrAuthBridge, err)
			}
		}

	default:
		return nil, fmt.Errorf("%w: %v", ErrAuthBridge, err)
	}

	return &dtos.BridgeResponse{
		Success:  true,
		Email:    email,
		Password: oneTime,
	}, nil
}
