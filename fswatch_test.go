package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchTemplateReloadsOnChange(t *testing.T) {
	path := writeTemplate(t, "old\n")
	tpl, err := loadTemplate(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := watchTemplate(ctx, tpl)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0644))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal after rewriting the template")
	}

	out, err := tpl.Render(map[string]interface{}{})
	require.NoError(t, err)
	require.Equal(t, "new\n", out)
}

func TestWatchTemplateIgnoresSiblingFiles(t *testing.T) {
	path := writeTemplate(t, "old\n")
	tpl, err := loadTemplate(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := watchTemplate(ctx, tpl)
	require.NoError(t, err)

	sibling := path + ".sibling"
	require.NoError(t, os.WriteFile(sibling, []byte("unrelated\n"), 0644))

	select {
	case <-changes:
		t.Fatal("unexpected change signal for a sibling file")
	case <-time.After(500 * time.Millisecond):
	}
}
