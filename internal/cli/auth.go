package cli

import (
	"context"

	"github.com/lesvieux/portal/internal/accounts"
)

// Login is the login surface. On an uninitialized platform it routes to
// first-setup instead, the way the login page redirects to /initialize.
func (a *App) Login(ctx context.Context) {
	if a.session.FirstSetupRequired(ctx) {
		printlnFn("The platform has no accounts yet; creating the first one.")
		a.Initialize(ctx)
		return
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	if username == "" || password == "" {
		// Mirrors the disabled submit button: nothing is sent.
		printlnFn("Username and password are required.")
		return
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		printlnFn("Login failed:", err.Error())
		return
	}
	printlnFn("Logged in as", username)
}

func (a *App) Logout(ctx context.Context) {
	a.session.Logout()
	printlnFn("Logged out.")
}

// Initialize is the first-setup surface: creates the platform's first
// account, then logs straight in with it.
func (a *App) Initialize(ctx context.Context) {
	if !a.session.FirstSetupRequired(ctx) {
		printlnFn("The platform is already initialized. Run 'login'.")
		return
	}

	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	password, err := GetPassword("Choose a password", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}

	_, err = a.accounts.CreateFirst(ctx, accounts.CreateAccountRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		printlnFn("Setup failed:", err.Error())
		return
	}
	printlnFn("First account created.")

	if err := a.session.Login(ctx, username, password); err != nil {
		printlnFn("Login failed:", err.Error())
		return
	}
	printlnFn("Logged in as", username)
}

// Passwd changes the caller's own password.
func (a *App) Passwd(ctx context.Context) {
	if !a.requireAuth(ctx) {
		return
	}

	password, err := GetPassword("New password", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}

	if err := a.accounts.ChangeMyPassword(ctx, password, confirm); err != nil {
		printlnFn("Password change failed:", err.Error())
		return
	}
	printlnFn("Password changed.")
}

// Status prints the platform status probe.
func (a *App) Status(ctx context.Context) {
	info, err := a.client.Status(ctx)
	if err != nil {
		printlnFn("Status check failed:", err.Error())
		return
	}
	printlnFn("version:", info.Version, "initialized:", info.Initialized)
}
