package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avorobjovs/demoboard/internal/common"
)

// Login prompts for dashboard credentials and authenticates the session.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Println("Invalid email or password.")
		} else {
			fmt.Printf("Login failed: %v\n", err)
		}
		return err
	}

	user := a.auth.CurrentUser()
	fmt.Printf("Logged in as %s (%s)\n", user.Email, a.auth.Role())
	return nil
}

// Register passes a registration through to the directory's public endpoint.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}

	id, _, err := a.users.Register(ctx, email, password)
	if err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		return err
	}
	fmt.Printf("Registered with id %d\n", id)
	return nil
}

// Logout ends the session and clears all per-session overlay state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Printf("Logout failed: %v\n", err)
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// Whoami prints the current session identity.
func (a *App) Whoami(ctx context.Context) error {
	user := a.auth.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, a.auth.Role())
	return nil
}
