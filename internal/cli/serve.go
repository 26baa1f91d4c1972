package cli

import (
	"context"

	urfave "github.com/urfave/cli/v3"

	"github.com/vbalien/textrank/internal/server"
)

const (
	flagAddr    = "addr"
	defaultAddr = ":8080"
)

func (a *app) serveCmd() *urfave.Command {
	return &urfave.Command{
		Name:    "serve",
		Aliases: []string{"server"},
		Usage:   "Start the HTTP keyword service",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:  flagAddr,
				Usage: "Address the HTTP server listens on",
				Value: defaultAddr,
			},
		},
		Action: a.cmdServe,
	}
}

func (a *app) cmdServe(ctx context.Context, cmd *urfave.Command) error {
	srv := server.New(a.extractor(), a.cfg.TopN, a.logger)
	return srv.Run(ctx, cmd.String(flagAddr))
}
