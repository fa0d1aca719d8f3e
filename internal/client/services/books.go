package services

import (
	"context"

	"github.com/avorobjovs/demoboard/internal/client/api"
	"github.com/avorobjovs/demoboard/internal/client/models"
	"github.com/avorobjovs/demoboard/internal/logging"
)

// BooksPerPage is the catalog page size.
const BooksPerPage = 15

// UnknownAuthor replaces an author whose lookup failed.
const UnknownAuthor = "Unknown author"

// LibraryAPI is the remote surface of the book catalog the service consumes.
type LibraryAPI interface {
	Search(ctx context.Context, query string, page, limit int, filters api.SearchFilters) (*models.BookPage, error)
	Work(ctx context.Context, workID string) (*models.BookDetails, []string, error)
	Author(ctx context.Context, authorID string) (string, error)
}

// BooksService fronts the read-only book catalog. Author names on a details
// view are resolved individually; a failed lookup degrades that one author
// to a placeholder instead of failing the whole view.
type BooksService struct {
	library LibraryAPI
	logger  logging.Logger
}

func NewBooksService(library LibraryAPI, logger logging.Logger) *BooksService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &BooksService{library: library, logger: logger}
}

// Search queries the catalog with optional author/year filters.
func (s *BooksService) Search(ctx context.Context, query string, page int, filters api.SearchFilters) (*models.BookPage, error) {
	return s.library.Search(ctx, query, page, BooksPerPage, filters)
}

// Details fetches a work and resolves its author names.
func (s *BooksService) Details(ctx context.Context, workID string) (*models.BookDetails, error) {
	details, authorIDs, err := s.library.Work(ctx, workID)
	if err != nil {
		return nil, err
	}

	for _, authorID := range authorIDs {
		name, err := s.library.Author(ctx, authorID)
		if err != nil {
			s.logger.Warn(ctx, "author lookup failed", "author_id", authorID, "error", err)
			name = UnknownAuthor
		}
		details.Authors = append(details.Authors, name)
	}
	return details, nil
}
