package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/client/client"
	"github.com/dmitrijs2005/todoapi/internal/client/models"
)

func TestRegister_PromptsForEmail(t *testing.T) {
	stubPassword(t, "secret1")
	app, fa, _, out := newTestApp("alice@example.org\n")

	if err := app.Register(context.Background(), nil); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if fa.lastEmail != "alice@example.org" {
		t.Fatalf("Register email mismatch: %q", fa.lastEmail)
	}
	if string(fa.lastPass) != "secret1" {
		t.Fatalf("Register pass mismatch: %q", string(fa.lastPass))
	}
	if !strings.Contains(out.String(), "Registered as alice@example.org") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLogin_EmailFromArgs(t *testing.T) {
	stubPassword(t, "secret1")
	app, fa, _, _ := newTestApp("")

	if err := app.Login(context.Background(), []string{"bob@example.org"}); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if fa.lastEmail != "bob@example.org" {
		t.Fatalf("Login email mismatch: %q", fa.lastEmail)
	}
	if !app.isLoggedIn() {
		t.Fatal("expected to be logged in")
	}
	if app.getStatus() != "(bob@example.org online)" {
		t.Fatalf("unexpected status %q", app.getStatus())
	}
}

func TestLogin_Rejected(t *testing.T) {
	stubPassword(t, "wrong")
	app, fa, _, out := newTestApp("")
	fa.err = client.ErrInvalidCredentials

	if err := app.Login(context.Background(), []string{"bob@example.org"}); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out.String(), "Error: invalid email or password") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if app.isLoggedIn() {
		t.Fatal("must stay logged out")
	}
}

func TestLogout(t *testing.T) {
	app, fa, _, out := newTestApp("")
	fa.user = &models.User{Email: "a@b.c"}

	if err := app.Logout(context.Background(), nil); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if app.isLoggedIn() {
		t.Fatal("user not cleared")
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestMe_NotLoggedIn(t *testing.T) {
	app, fa, _, out := newTestApp("")
	fa.err = client.ErrUnauthorized

	if err := app.Me(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out.String(), "not logged in") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestDeleteAccount_NeedsConfirmation(t *testing.T) {
	app, fa, _, out := newTestApp("no\nyes\n")
	fa.user = &models.User{Email: "a@b.c"}

	if err := app.DeleteAccount(context.Background(), nil); err != nil {
		t.Fatalf("DeleteAccount err: %v", err)
	}
	if fa.deleted {
		t.Fatal("account deleted without confirmation")
	}
	if !strings.Contains(out.String(), "Cancelled") {
		t.Fatalf("unexpected output %q", out.String())
	}

	if err := app.DeleteAccount(context.Background(), nil); err != nil {
		t.Fatalf("DeleteAccount err: %v", err)
	}
	if !fa.deleted {
		t.Fatal("account not deleted after confirmation")
	}
}
