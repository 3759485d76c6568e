package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotifySuccess(t *testing.T) {
	err := execNotifier{}.Notify([]string{"true"})
	require.NoError(t, err)
}

func TestNotifyWithArguments(t *testing.T) {
	err := execNotifier{}.Notify([]string{"sh", "-c", "exit 0"})
	require.NoError(t, err)
}

func TestNotifyNonZeroExit(t *testing.T) {
	err := execNotifier{}.Notify([]string{"false"})
	require.Error(t, err)
	require.ErrorContains(t, err, "status 1")
}

func TestNotifyLaunchFailure(t *testing.T) {
	err := execNotifier{}.Notify([]string{"/nonexistent/dns-template-test-cmd"})
	require.Error(t, err)
	require.ErrorContains(t, err, "could not run")
}

func TestNotifyEmptyCommand(t *testing.T) {
	require.NoError(t, execNotifier{}.Notify(nil))
}
