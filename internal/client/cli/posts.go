package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/avorobjovs/demoboard/internal/common"
)

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		fmt.Println("Usage:", usage)
		return 0, errors.New("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("Invalid id %q\n", args[0])
		return 0, err
	}
	return id, nil
}

func parsePage(args []string) int {
	if len(args) == 0 {
		return 1
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Posts prints one merged page of the board.
func (a *App) Posts(ctx context.Context, args []string) error {
	page := parsePage(args)
	posts, total, err := a.posts.List(ctx, page)
	if err != nil {
		fmt.Printf("Listing posts failed: %v\n", err)
		return err
	}
	for _, p := range posts {
		fmt.Printf("%6d  [user %d]  %s\n", p.ID, p.UserID, p.Title)
	}
	fmt.Printf("Page %d of %d\n", page, total)
	return nil
}

// ShowPost prints a single post with its comments.
func (a *App) ShowPost(ctx context.Context, args []string) error {
	id, err := parseID(args, "post <id>")
	if err != nil {
		return err
	}
	post, err := a.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No such post.")
		} else {
			fmt.Printf("Fetching post failed: %v\n", err)
		}
		return err
	}
	fmt.Printf("#%d %s\n\n%s\n", post.ID, post.Title, post.Body)

	comments, err := a.posts.Comments(ctx, id)
	if err != nil {
		fmt.Printf("Fetching comments failed: %v\n", err)
		return err
	}
	fmt.Printf("\nComments (%d):\n", len(comments))
	for _, c := range comments {
		fmt.Printf("- %s <%s>: %s\n", c.Name, c.Email, c.Body)
	}
	return nil
}

// CreatePost prompts for a title and a body and stores the new post.
func (a *App) CreatePost(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Enter body", os.Stdout)
	if err != nil {
		return err
	}

	user := a.auth.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return errors.New("not logged in")
	}

	created, err := a.posts.Create(ctx, title, body, user.ID)
	if err != nil {
		fmt.Printf("Creating post failed: %v\n", err)
		return err
	}
	fmt.Printf("Created post %d\n", created.ID)
	return nil
}

// EditPost prompts for new content and applies the edit.
func (a *App) EditPost(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Enter new body", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.posts.Update(ctx, id, title, body); err != nil {
		fmt.Printf("Editing post failed: %v\n", err)
		return err
	}
	fmt.Printf("Updated post %d\n", id)
	return nil
}

// DeletePost removes a post from every future view.
func (a *App) DeletePost(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	if err := a.posts.Delete(ctx, id); err != nil {
		fmt.Printf("Deleting post failed: %v\n", err)
		return err
	}
	fmt.Printf("Deleted post %d\n", id)
	return nil
}

// Favorite marks a post id as favorite.
func (a *App) Favorite(ctx context.Context, args []string) error {
	id, err := parseID(args, "fav <id>")
	if err != nil {
		return err
	}
	if err := a.posts.AddFavorite(ctx, id); err != nil {
		fmt.Printf("Adding favorite failed: %v\n", err)
		return err
	}
	fmt.Printf("Favorited post %d\n", id)
	return nil
}

// Unfavorite unmarks a post id.
func (a *App) Unfavorite(ctx context.Context, args []string) error {
	id, err := parseID(args, "unfav <id>")
	if err != nil {
		return err
	}
	if err := a.posts.RemoveFavorite(ctx, id); err != nil {
		fmt.Printf("Removing favorite failed: %v\n", err)
		return err
	}
	fmt.Printf("Unfavorited post %d\n", id)
	return nil
}

// Favorites prints the assembled favorites view.
func (a *App) Favorites(ctx context.Context) error {
	posts, err := a.posts.Favorites(ctx)
	if err != nil {
		fmt.Printf("Listing favorites failed: %v\n", err)
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}
	for _, p := range posts {
		fmt.Printf("%6d  %s\n", p.ID, p.Title)
	}
	return nil
}
