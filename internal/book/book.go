// Package book provides read and create access to catalog books.
package book

import "shopcatalog/internal/persistence"

// Book is a catalog book. ID is zero until the book has been created.
type Book struct {
	ID            int64   `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Price         float64 `db:"price" json:"price"`
	Description   *string `db:"description" json:"description,omitempty"`
	ISBN          string  `db:"isbn" json:"isbn"`
	NbOfPage      int     `db:"nb_of_page" json:"nb_of_page"`
	Illustrations bool    `db:"illustrations" json:"illustrations"`
}

// FindAllBooks selects every book. Rows come back in creation order.
var FindAllBooks = persistence.NamedQuery[Book]{
	Name: "findAllBooks",
	SQL: `
		SELECT id, title, price, description, isbn, nb_of_page, illustrations
		FROM books
		ORDER BY id`,
}
