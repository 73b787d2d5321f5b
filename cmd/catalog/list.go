package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"shopcatalog/internal/book"
	"shopcatalog/internal/cd"
	"shopcatalog/internal/database"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func renderBooks(w io.Writer, books []book.Book, asJSON bool) error {
	if asJSON {
		return writeJSON(w, books)
	}
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		description := ""
		if b.Description != nil {
			description = *b.Description
		}
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			formatPrice(b.Price),
			b.ISBN,
			strconv.Itoa(b.NbOfPage),
			strconv.FormatBool(b.Illustrations),
			description,
		})
	}
	return renderTable(w, []string{"ID", "TITLE", "PRICE", "ISBN", "PAGES", "ILLUSTRATIONS", "DESCRIPTION"}, rows)
}

func renderCDs(w io.Writer, cds []cd.CD, asJSON bool) error {
	if asJSON {
		return writeJSON(w, cds)
	}
	rows := make([][]string, 0, len(cds))
	for _, c := range cds {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Title,
			formatPrice(c.Price),
			c.Gender,
			c.MusicCompany,
			strconv.Itoa(c.NumberOfCDs),
			strconv.FormatFloat(c.TotalDuration, 'f', -1, 64),
			strconv.Itoa(len(c.Cover)),
		})
	}
	return renderTable(w, []string{"ID", "TITLE", "PRICE", "GENDER", "COMPANY", "DISCS", "MINUTES", "COVER BYTES"}, rows)
}

func newBooksCmd(a *app) *cobra.Command {
	var jsonOut bool

	list := &cobra.Command{
		Use:   "list",
		Short: "List every book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd.Context(), func(db *database.DB) error {
				books, err := book.NewGateway(book.NewPostgresStore(db.Pool, a.log)).FindAll(cmd.Context())
				if err != nil {
					return err
				}
				return renderBooks(cmd.OutOrStdout(), books, jsonOut)
			})
		},
	}
	list.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	cmd := &cobra.Command{Use: "books", Short: "Work with catalog books"}
	cmd.AddCommand(list)
	return cmd
}

func newCDsCmd(a *app) *cobra.Command {
	var jsonOut bool

	list := &cobra.Command{
		Use:   "list",
		Short: "List every CD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd.Context(), func(db *database.DB) error {
				cds, err := cd.NewGateway(cd.NewPostgresStore(db.Pool, a.log)).FindAll(cmd.Context())
				if err != nil {
					return err
				}
				return renderCDs(cmd.OutOrStdout(), cds, jsonOut)
			})
		},
	}
	list.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	cmd := &cobra.Command{Use: "cds", Short: "Work with catalog CDs"}
	cmd.AddCommand(list)
	return cmd
}
