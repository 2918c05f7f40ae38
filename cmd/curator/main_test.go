package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func loggerContext(t *testing.T, level string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", level, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		assert.NoError(t, setupLogger(loggerContext(t, level)), "level %q", level)
	}
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	err := setupLogger(loggerContext(t, "verbose"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRunCommandRequiresConfig(t *testing.T) {
	app := &cli.App{
		Name: "curator",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Required: true},
				},
			},
		},
	}

	err := app.Run([]string{"curator", "run"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestBuildAdaptersCoversRecipeSites(t *testing.T) {
	adapters := buildAdapters()
	require.NotEmpty(t, adapters)
}
