package book

import (
	"shopcatalog/internal/persistence/memory"
	"shopcatalog/internal/postgres"

	"github.com/rs/zerolog"
)

const insertBook = `
	INSERT INTO books (title, price, description, isbn, nb_of_page, illustrations)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

var mapping = postgres.Mapping[Book]{
	Table:  "books",
	Insert: insertBook,
	Values: func(b *Book) []any {
		return []any{b.Title, b.Price, b.Description, b.ISBN, b.NbOfPage, b.Illustrations}
	},
	Key: func(b *Book) *int64 { return &b.ID },
}

// NewPostgresStore returns a Store over db, which may be a pool or a
// transaction.
func NewPostgresStore(db postgres.DBTX, log zerolog.Logger) *postgres.Table[Book] {
	return postgres.NewTable(db, mapping, log)
}

// NewMemoryStore returns a Store that keeps books in process memory.
func NewMemoryStore() *memory.Table[Book] {
	return memory.NewTable("books", mapping.Key, clone).Handle(FindAllBooks, nil)
}

func clone(b Book) Book {
	if b.Description != nil {
		description := *b.Description
		b.Description = &description
	}
	return b
}
