package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	assert.Equal(t, "urlsigner", app.Name)

	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"sign", "verify", "serve"}, names)

	sign := app.Command("sign")
	require.NotNil(t, sign)
	flags := make([]string, 0, len(sign.Flags))
	for _, f := range sign.Flags {
		flags = append(flags, f.Names()[0])
	}
	assert.Equal(t, []string{"ttl", "scheme", "algorithm"}, flags)
}
