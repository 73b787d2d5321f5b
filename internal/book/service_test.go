package book_test

import (
	"context"
	"errors"
	"testing"

	"shopcatalog/internal/book"
	"shopcatalog/internal/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) RunNamedQuery(ctx context.Context, q persistence.NamedQuery[book.Book]) ([]book.Book, error) {
	args := m.Called(ctx, q)
	books, _ := args.Get(0).([]book.Book)
	return books, args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func hitchhiker() *book.Book {
	description := "Scifi book"
	return &book.Book{
		Title:         "H2G2",
		Price:         12.5,
		Description:   &description,
		ISBN:          "1-84023-742-2",
		NbOfPage:      354,
		Illustrations: false,
	}
}

func TestGateway_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the findAllBooks query", func(t *testing.T) {
		store := new(mockStore)
		want := []book.Book{{ID: 1, Title: "H2G2"}, {ID: 2, Title: "Dune"}}
		store.On("RunNamedQuery", ctx, book.FindAllBooks).Return(want, nil).Once()

		got, err := book.NewGateway(store).FindAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		store.AssertExpectations(t)
	})

	t.Run("propagates store failures unchanged", func(t *testing.T) {
		store := new(mockStore)
		storeErr := &persistence.Error{Op: persistence.OpQuery, Target: "findAllBooks", Code: persistence.Connection, Err: errors.New("connection refused")}
		store.On("RunNamedQuery", ctx, book.FindAllBooks).Return(nil, storeErr).Once()

		got, err := book.NewGateway(store).FindAll(ctx)

		assert.Nil(t, got)
		assert.Same(t, storeErr, err)
		store.AssertExpectations(t)
	})

	t.Run("empty store yields an empty non-nil slice", func(t *testing.T) {
		got, err := book.NewGateway(book.NewMemoryStore()).FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestGateway_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts the caller's book", func(t *testing.T) {
		store := new(mockStore)
		b := hitchhiker()
		store.On("Insert", ctx, b).Run(func(args mock.Arguments) {
			args.Get(1).(*book.Book).ID = 42
		}).Return(nil).Once()

		got, err := book.NewGateway(store).Create(ctx, b)

		require.NoError(t, err)
		assert.Same(t, b, got)
		assert.Equal(t, int64(42), got.ID)
		store.AssertExpectations(t)
	})

	t.Run("store rejection is returned and no book is produced", func(t *testing.T) {
		store := book.NewMemoryStore()
		store.FailNext(persistence.CheckViolation, errors.New(`new row violates check constraint "books_title_check"`))
		gw := book.NewGateway(store)

		got, err := gw.Create(ctx, &book.Book{})

		assert.Nil(t, got)
		assert.Equal(t, persistence.CheckViolation, persistence.CodeOf(err))

		all, err := gw.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGateway_CreateThenFindAll(t *testing.T) {
	ctx := context.Background()
	gw := book.NewGateway(book.NewMemoryStore())

	created, err := gw.Create(ctx, hitchhiker())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	all, err := gw.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *created, all[0])
	assert.Equal(t, "H2G2", all[0].Title)
	assert.Equal(t, 12.5, all[0].Price)
	require.NotNil(t, all[0].Description)
	assert.Equal(t, "Scifi book", *all[0].Description)
	assert.Equal(t, "1-84023-742-2", all[0].ISBN)
	assert.Equal(t, 354, all[0].NbOfPage)
	assert.False(t, all[0].Illustrations)
}

func TestGateway_CreateIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	gw := book.NewGateway(book.NewMemoryStore())

	first, err := gw.Create(ctx, hitchhiker())
	require.NoError(t, err)
	second, err := gw.Create(ctx, hitchhiker())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	all, err := gw.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGateway_NilDescriptionStaysNil(t *testing.T) {
	ctx := context.Background()
	gw := book.NewGateway(book.NewMemoryStore())

	_, err := gw.Create(ctx, &book.Book{Title: "Untitled draft"})
	require.NoError(t, err)

	all, err := gw.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].Description)
}
