package clicfg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type testConfig struct {
	Name    string   `flag:"name"`
	Verbose bool     `flag:"verbose"`
	Count   int      `flag:"count"`
	Tags    []string `flag:"tag"`
	Ignored string
}

func parse(t *testing.T, target any, args ...string) error {
	var parseErr error
	c := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Value: "default"},
			&cli.BoolFlag{Name: "verbose"},
			&cli.IntFlag{Name: "count"},
			&cli.StringSliceFlag{Name: "tag"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			parseErr = ParseFlags(c, target)
			return nil
		},
	}
	require.Nil(t, c.Run(context.Background(), append([]string{"test"}, args...)))
	return parseErr
}

func TestParseFlags(t *testing.T) {
	cfg := testConfig{Ignored: "kept"}
	err := parse(t, &cfg, "--verbose", "--count", "3", "--tag", "a", "--tag", "b")
	require.Nil(t, err)
	require.Equal(t, testConfig{Name: "default", Verbose: true, Count: 3, Tags: []string{"a", "b"}, Ignored: "kept"}, cfg)
}

func TestParseFlagsRequiresStructPointer(t *testing.T) {
	err := parse(t, testConfig{})
	require.ErrorIs(t, err, ErrCannotParseFlags)
	s := "x"
	err = parse(t, &s)
	require.ErrorIs(t, err, ErrCannotParseFlags)
	err = parse(t, &struct {
		Ratio float64 `flag:"name"`
	}{})
	require.ErrorIs(t, err, ErrCannotParseFlags)
}
