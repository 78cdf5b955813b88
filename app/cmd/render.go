package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Semior001/newsview/app/render"
	"github.com/Semior001/newsview/app/view"
	"golang.org/x/exp/slog"
)

// Render fetches the article list once and writes it to a file or stdout.
type Render struct {
	News   NewsOpts `group:"news" namespace:"news" env-namespace:"NEWS"`
	Format string   `long:"format" env:"FORMAT" choice:"html" choice:"text" choice:"markdown" default:"html" description:"output format"`
	Output string   `long:"out" env:"OUT" description:"output file, stdout if empty"`
	Strict bool     `long:"strict" env:"STRICT" description:"exit with an error if articles could not be retrieved"`

	stdout io.Writer
}

// Execute runs the command.
func (r Render) Execute(_ []string) error {
	lg := slog.Default()

	snap, err := view.LoadOnce(context.Background(), lg.With(slog.String("prefix", "view")), r.News.service(lg))
	if err != nil {
		return err
	}

	w := r.stdout
	if w == nil {
		w = os.Stdout
	}

	if r.Output != "" {
		f, err := os.Create(r.Output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				lg.Warn("failed to close output file", slog.Any("err", err))
			}
		}()
		w = f
	}

	if err = render.Write(w, render.Format(r.Format), snap.Document()); err != nil {
		return fmt.Errorf("render articles: %w", err)
	}

	if r.Strict && snap.State == view.Failed {
		return fmt.Errorf("retrieve articles: %w", snap.Err)
	}

	return nil
}
