package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avorobjovs/demoboard/internal/client/api"
	"github.com/avorobjovs/demoboard/internal/client/models"
)

type fakeLibrary struct {
	page      *models.BookPage
	details   *models.BookDetails
	authorIDs []string
	authors   map[string]string
	authorErr map[string]error

	gotQuery string
	gotLimit int
}

func (f *fakeLibrary) Search(ctx context.Context, query string, page, limit int, filters api.SearchFilters) (*models.BookPage, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.page, nil
}

func (f *fakeLibrary) Work(ctx context.Context, workID string) (*models.BookDetails, []string, error) {
	if f.details == nil {
		return nil, nil, errors.New("work not found")
	}
	d := *f.details
	return &d, f.authorIDs, nil
}

func (f *fakeLibrary) Author(ctx context.Context, authorID string) (string, error) {
	if err := f.authorErr[authorID]; err != nil {
		return "", err
	}
	return f.authors[authorID], nil
}

func TestBooksSearch_UsesCatalogPageSize(t *testing.T) {
	lib := &fakeLibrary{page: &models.BookPage{NumFound: 1, Docs: []models.Book{{Key: "/works/OL1W", Title: "Dune"}}}}
	svc := NewBooksService(lib, nil)

	page, err := svc.Search(context.Background(), "dune", 1, api.SearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, "dune", lib.gotQuery)
	assert.Equal(t, BooksPerPage, lib.gotLimit)
	assert.Equal(t, 1, page.NumFound)
}

func TestBooksDetails_ResolvesAuthors(t *testing.T) {
	lib := &fakeLibrary{
		details:   &models.BookDetails{Key: "/works/OL1W", Title: "Dune"},
		authorIDs: []string{"OL1A", "OL2A"},
		authors:   map[string]string{"OL1A": "Frank Herbert", "OL2A": "Brian Herbert"},
	}
	svc := NewBooksService(lib, nil)

	details, err := svc.Details(context.Background(), "OL1W")
	require.NoError(t, err)
	assert.Equal(t, []string{"Frank Herbert", "Brian Herbert"}, details.Authors)
}

func TestBooksDetails_FailedAuthorLookupDegrades(t *testing.T) {
	lib := &fakeLibrary{
		details:   &models.BookDetails{Key: "/works/OL1W", Title: "Dune"},
		authorIDs: []string{"OL1A", "OL2A"},
		authors:   map[string]string{"OL2A": "Brian Herbert"},
		authorErr: map[string]error{"OL1A": errors.New("timeout")},
	}
	svc := NewBooksService(lib, nil)

	details, err := svc.Details(context.Background(), "OL1W")
	require.NoError(t, err, "a failed author lookup must not fail the view")
	assert.Equal(t, []string{UnknownAuthor, "Brian Herbert"}, details.Authors)
}

func TestBooksDetails_WorkErrorPropagates(t *testing.T) {
	svc := NewBooksService(&fakeLibrary{}, nil)
	_, err := svc.Details(context.Background(), "OLnopeW")
	require.Error(t, err)
}
