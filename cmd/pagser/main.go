package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sllt/pagser/pkg/pagser"
	"github.com/sllt/pagser/pkg/pagser/config"
	"github.com/sllt/pagser/pkg/pagser/logging"
	"github.com/sllt/pagser/pkg/pagser/version"
)

const (
	defaultServerAddr = "[::1]:50051"
	defaultProtoFile  = "protos/customer_service.proto"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "pagser",
		Usage:   "Read-only gRPC query service for sakila customers",
		Version: version.String(),
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the gRPC server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config-dir",
						Value: "./configs",
						Usage: "Directory holding .env files",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.NewEnvFile(cmd.String("config-dir"), logging.NewLogger(logging.INFO))

					app, err := pagser.New(cfg)
					if err != nil {
						return err
					}

					return app.Run(ctx)
				},
			},
			{
				Name:  "newest",
				Usage: "Print the ten most recently registered customers",
				Flags: clientFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withClient(ctx, cmd, func(ctx context.Context, c *client) error {
						return c.newest(ctx, cmd.Root().Writer)
					})
				},
			},
			{
				Name:  "details",
				Usage: "Print the details of one customer",
				Flags: append(clientFlags(), &cli.Int32Flag{
					Name:     "id",
					Usage:    "Customer id",
					Required: true,
				}),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withClient(ctx, cmd, func(ctx context.Context, c *client) error {
						return c.details(ctx, cmd.Root().Writer, cmd.Int32("id"))
					})
				},
			},
			{
				Name:  "describe",
				Usage: "List the services and RPCs declared in a proto file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "proto",
						Value: defaultProtoFile,
						Usage: "Path to the proto file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return describe(cmd.Root().Writer, cmd.String("proto"))
				},
			},
			{
				Name:  "version",
				Usage: "Print build information",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintf(cmd.Root().Writer, "pagser %s\n", version.String())
					return err
				},
			},
		},
	}
}

func clientFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Value:   defaultServerAddr,
			Usage:   "Server address",
			Sources: cli.EnvVars("PAGSER_ADDR"),
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 5 * time.Second,
			Usage: "Deadline for the call",
		},
	}
}

func withClient(ctx context.Context, cmd *cli.Command, fn func(context.Context, *client) error) error {
	c, err := dial(cmd.String("addr"))
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	return fn(ctx, c)
}
