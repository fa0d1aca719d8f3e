package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avorobjovs/demoboard/internal/client/api"
)

// Books searches the book catalog.
func (a *App) Books(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: books <query>")
		return fmt.Errorf("missing query")
	}
	query := strings.Join(args, " ")

	page, err := a.books.Search(ctx, query, 1, api.SearchFilters{})
	if err != nil {
		fmt.Printf("Book search failed: %v\n", err)
		return err
	}
	for _, b := range page.Docs {
		year := ""
		if b.FirstPublishYear != 0 {
			year = fmt.Sprintf(" (%d)", b.FirstPublishYear)
		}
		fmt.Printf("%-20s  %s%s by %s\n", strings.TrimPrefix(b.Key, "/works/"), b.Title, year, strings.Join(b.AuthorNames, ", "))
	}
	fmt.Printf("%d results\n", page.NumFound)
	return nil
}

// ShowBook prints a work's details with its resolved author names.
func (a *App) ShowBook(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: book <work-id>")
		return fmt.Errorf("missing work id")
	}

	details, err := a.books.Details(ctx, args[0])
	if err != nil {
		fmt.Printf("Fetching book failed: %v\n", err)
		return err
	}
	fmt.Printf("%s\nby %s\n", details.Title, strings.Join(details.Authors, ", "))
	if details.Description != "" {
		fmt.Printf("\n%s\n", details.Description)
	}
	return nil
}
