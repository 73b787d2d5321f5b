package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"shopcatalog/internal/book"
	"shopcatalog/internal/cd"
	"shopcatalog/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type bookFixture struct {
	Title         string  `yaml:"title"`
	Price         float64 `yaml:"price"`
	Description   *string `yaml:"description"`
	ISBN          string  `yaml:"isbn"`
	NbOfPage      int     `yaml:"nb_of_page"`
	Illustrations bool    `yaml:"illustrations"`
}

type cdFixture struct {
	Title         string  `yaml:"title"`
	Price         float64 `yaml:"price"`
	Description   string  `yaml:"description"`
	Gender        string  `yaml:"gender"`
	MusicCompany  string  `yaml:"music_company"`
	NumberOfCDs   int     `yaml:"number_of_cds"`
	TotalDuration float64 `yaml:"total_duration"`
	// Cover is stored as the raw bytes of this string.
	Cover string `yaml:"cover"`
}

type fixtures struct {
	Books []bookFixture `yaml:"books"`
	CDs   []cdFixture   `yaml:"cds"`
}

func (f bookFixture) book() *book.Book {
	return &book.Book{
		Title:         f.Title,
		Price:         f.Price,
		Description:   f.Description,
		ISBN:          f.ISBN,
		NbOfPage:      f.NbOfPage,
		Illustrations: f.Illustrations,
	}
}

func (f cdFixture) cd() *cd.CD {
	c := &cd.CD{
		Title:         f.Title,
		Price:         f.Price,
		Description:   f.Description,
		Gender:        f.Gender,
		MusicCompany:  f.MusicCompany,
		NumberOfCDs:   f.NumberOfCDs,
		TotalDuration: f.TotalDuration,
	}
	if f.Cover != "" {
		c.Cover = []byte(f.Cover)
	}
	return c
}

func parseFixtures(r io.Reader) (*fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f fixtures
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

func loadFixtures(path string) (*fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer file.Close()
	return parseFixtures(file)
}

type seedResult struct {
	Books []book.Book
	CDs   []cd.CD
}

// seed creates every fixture through the gateways, stopping at the first
// failure.
func seed(ctx context.Context, books *book.Gateway, cds *cd.Gateway, f *fixtures) (*seedResult, error) {
	res := &seedResult{}
	for i, bf := range f.Books {
		b, err := books.Create(ctx, bf.book())
		if err != nil {
			return nil, fmt.Errorf("book %d (%q): %w", i, bf.Title, err)
		}
		res.Books = append(res.Books, *b)
	}
	for i, cf := range f.CDs {
		c, err := cds.Create(ctx, cf.cd())
		if err != nil {
			return nil, fmt.Errorf("cd %d (%q): %w", i, cf.Title, err)
		}
		res.CDs = append(res.CDs, *c)
	}
	return res, nil
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the books and CDs listed in a YAML fixture file",
		Long: `Create every book and CD of a fixture file in a single transaction.

With --dry-run the fixtures are created in memory only, which checks the
file without touching the database.

Example fixture:
  books:
    - title: H2G2
      price: 12.5
      description: Scifi book
      isbn: 1-84023-742-2
      nb_of_page: 354
  cds:
    - title: Zoot Allures
      price: 12.5
      number_of_cds: 2
      cover: Cover Image`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixtures(file)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var res *seedResult
			if dryRun {
				res, err = seed(ctx, book.NewGateway(book.NewMemoryStore()), cd.NewGateway(cd.NewMemoryStore()), f)
			} else {
				err = a.withDB(ctx, func(db *database.DB) error {
					return db.InTx(ctx, func(tx pgx.Tx) error {
						var err error
						res, err = seed(ctx,
							book.NewGateway(book.NewPostgresStore(tx, a.log)),
							cd.NewGateway(cd.NewPostgresStore(tx, a.log)),
							f)
						return err
					})
				})
			}
			if err != nil {
				return err
			}

			a.log.Info().
				Bool("dry_run", dryRun).
				Int("books", len(res.Books)).
				Int("cds", len(res.CDs)).
				Msg("seed finished")
			fmt.Fprintf(cmd.OutOrStdout(), "created %d books and %d CDs\n", len(res.Books), len(res.CDs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Fixture file (YAML)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Create the fixtures in memory without touching the database")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
