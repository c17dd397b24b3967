package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nzoschke/healthmate/internal/service"
)

func TestTokenCmd(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "cli-secret")

	var out, errOut bytes.Buffer
	cmd := TokenCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"tablet", "--expiry", "1h"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	token := strings.TrimSpace(out.String())
	subject, err := service.NewAuthService("cli-secret", time.Hour).VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if subject != "tablet" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(errOut.String(), `"tablet"`) {
		t.Errorf("stderr = %q", errOut.String())
	}
}
