// Package cmd contains commands for the application.
package cmd

import (
	"net/http"
	"time"

	"github.com/Semior001/newsview/app/news"
	"github.com/Semior001/newsview/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// NewsOpts defines how to reach the news endpoint.
type NewsOpts struct {
	Endpoint string        `long:"endpoint" env:"ENDPOINT" default:"http://localhost:5000" description:"base URL of the news API, /news is appended"`
	Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"timeout for the news request"`
	Page     int           `long:"page" env:"PAGE" description:"page to request, omitted if zero"`
	PerPage  int           `long:"per-page" env:"PER_PAGE" description:"articles per page, omitted if zero"`
}

const userAgent = "newsview"

// secretHeaders are masked in the debug logs of the news client.
var secretHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

func (o NewsOpts) service(lg *slog.Logger) *news.Service {
	cl := requester.New(
		http.Client{Timeout: o.Timeout},
		middleware.Header("User-Agent", userAgent),
		logx.LoggingRoundTripper(lg.With(slog.String("prefix", "http")), logx.RoundTripperOpts{
			Level:         slog.LevelDebug,
			SecretHeaders: secretHeaders,
		}),
	).Client()

	fetcher := news.NewFetcher(lg.With(slog.String("prefix", "fetcher")), cl, news.FetcherParams{
		Endpoint: o.Endpoint,
		Page:     o.Page,
		PerPage:  o.PerPage,
	})

	return news.NewService(
		lg.With(slog.String("prefix", "news")),
		fetcher,
		news.NewNormalizer(lg.With(slog.String("prefix", "normalizer"))),
	)
}
