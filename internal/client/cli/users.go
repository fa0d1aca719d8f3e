package cli

import (
	"context"
	"fmt"
)

// Users prints one merged page of the user directory.
func (a *App) Users(ctx context.Context, args []string) error {
	page := parsePage(args)
	users, err := a.users.List(ctx, page)
	if err != nil {
		fmt.Printf("Listing users failed: %v\n", err)
		return err
	}
	for _, u := range users.Data {
		fmt.Printf("%4d  %-10s  %s %s <%s>\n", u.ID, u.Role, u.FirstName, u.LastName, u.Email)
	}
	fmt.Printf("Page %d of %d\n", users.Page, users.TotalPages)
	return nil
}

// DeleteUser hides a user from every listing for the rest of the session.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	id, err := parseID(args, "userdel <id>")
	if err != nil {
		return err
	}
	if err := a.users.Delete(ctx, id); err != nil {
		fmt.Printf("Deleting user failed: %v\n", err)
		return err
	}
	fmt.Printf("Deleted user %d\n", id)
	return nil
}

// ChangeRole records a role override for a user.
func (a *App) ChangeRole(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Println("Usage: role <id> <admin|user|moderator>")
		return fmt.Errorf("missing arguments")
	}
	id, err := parseID(args[:1], "role <id> <admin|user|moderator>")
	if err != nil {
		return err
	}
	if err := a.users.ChangeRole(ctx, id, args[1]); err != nil {
		fmt.Printf("Changing role failed: %v\n", err)
		return err
	}
	fmt.Printf("User %d is now %s\n", id, args[1])
	return nil
}
