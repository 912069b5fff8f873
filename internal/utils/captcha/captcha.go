package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recetario-backend/domain"
	"recetario-backend/internal/utils"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

type (
	// Verifier checks a client-supplied CAPTCHA token server-side before
	// self-service registration is allowed to proceed.
	Verifier interface {
		Verify(ctx context.Context, token string) error
	}

	googleVerifier struct {
		client *http.Client
	}
)

func NewGoogleVerifier() Verifier {
	return &googleVerifier{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *googleVerifier) Verify(ctx context.Context, token string) error {
	secret := utils.GetConfig("RECAPTCHA_SECRET")

	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	if !result.Success {
		return domain.ErrCaptchaFailed
	}
	return nil
}
