package user

import (
	"context"
	"errors"
	"testing"

	"fridgetrack/domain"
)

func TestSignInWithGoogleFailsClosedWithoutClientID(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")

	service := NewUserService(nil, nil, nil, nil)

	_, err := service.SignInWithGoogle(context.Background(), domain.GoogleSignInRequest{IDToken: "some-token"})
	if !errors.Is(err, domain.ErrGoogleAuthNotConfigured) {
		t.Fatalf("expected ErrGoogleAuthNotConfigured, got %v", err)
	}
}
