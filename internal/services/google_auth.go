package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cinerent/internal/models"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleUserinfo is the subset of the userinfo response we consume.
type googleUserinfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLoginURL returns the consent-screen URL to redirect the caller to.
func (s *AuthService) GoogleLoginURL(state string) (string, error) {
	if s.oauthCfg == nil {
		return "", errors.New("google login is not configured")
	}
	return s.oauthCfg.AuthCodeURL(state), nil
}

// GoogleCallback exchanges the authorization code, resolves the Google account
// to a local user (creating one, or attaching the Google id to an existing
// account with the same email), and returns a signed token for it.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (string, error) {
	if s.oauthCfg == nil {
		return "", errors.New("google login is not configured")
	}

	tok, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	resp, err := s.oauthCfg.Client(ctx, tok).Get(googleUserinfoURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return "", errors.New("google userinfo is missing id or email")
	}

	user, err := s.userRepo.GetByGoogleID(info.ID)
	if err != nil {
		// First Google login: attach to an existing account with the same
		// email, or create a fresh public account.
		user, err = s.userRepo.GetByEmail(info.Email)
		if err == nil {
			user.GoogleID = info.ID
			if err := s.userRepo.Update(user); err != nil {
				return "", fmt.Errorf("failed to link google account: %w", err)
			}
		} else {
			username := info.Name
			if username == "" {
				username = strings.SplitN(info.Email, "@", 2)[0]
			}
			user = &models.User{
				Username: username,
				Email:    info.Email,
				GoogleID: info.ID,
				Role:     models.RolePublic,
			}
			if err := s.userRepo.Create(user); err != nil {
				return "", fmt.Errorf("failed to create user from google account: %w", err)
			}
		}
	}

	return s.GenerateToken(user)
}
