package cmd

import "github.com/urfave/cli/v2"

func NewApp() *cli.App {
	return &cli.App{
		Name:   "cancelrun",
		Usage:  "cancel the Currents run of a GitHub Actions workflow run",
		Flags:  CancelFlags(),
		Action: CancelRun,
		Commands: []*cli.Command{
			{
				Name:   "cancel",
				Usage:  "cancel the Currents run of a GitHub Actions workflow run",
				Flags:  CancelFlags(),
				Action: CancelRun,
			},
		},
	}
}
