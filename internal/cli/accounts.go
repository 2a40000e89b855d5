package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lesvieux/portal/internal/accounts"
	"github.com/lesvieux/portal/internal/models"
)

// Accounts lists every account (admin only).
func (a *App) Accounts(ctx context.Context) {
	if !a.requireAdmin(ctx) {
		return
	}
	entries, err := a.accounts.List(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return
	}
	for _, e := range entries {
		role := "author"
		if models.Role(e.Role) == models.RoleAdmin {
			role = "admin"
		}
		printlnFn(fmt.Sprintf("%4d  %-8s  %s", e.ID, role, e.Username))
	}
}

// AddUser creates an account on behalf of an admin.
func (a *App) AddUser(ctx context.Context) {
	if !a.requireAdmin(ctx) {
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
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		printlnFn("error:", err)
		return
	}

	id, err := a.accounts.Create(ctx, accounts.CreateAccountRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		printlnFn("Account creation failed:", err.Error())
		return
	}
	printlnFn("Account", id, "created.")
}

// DelUser removes an account permanently (admin only).
func (a *App) DelUser(ctx context.Context, arg string) {
	if !a.requireAdmin(ctx) {
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: deluser <id>")
		return
	}
	if err := a.accounts.Delete(ctx, id); err != nil {
		printlnFn("error:", err.Error())
		return
	}
	printlnFn("Account", id, "deleted.")
}

// SetPass changes another account's password (admin only).
func (a *App) SetPass(ctx context.Context, arg string) {
	if !a.requireAdmin(ctx) {
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: setpass <id>")
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

	err = a.accounts.ChangePassword(ctx, accounts.ChangePasswordRequest{
		AccountID:       id,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		printlnFn("Password change failed:", err.Error())
		return
	}
	printlnFn("Password changed for account", id)
}
