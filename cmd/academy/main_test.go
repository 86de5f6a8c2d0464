package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadreeb/academy/internal/pkg/authclient"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"serve"},
		{"migrate"},
		{"seed"},
		{"admin", "create"},
		{"session", "login"},
		{"session", "whoami"},
		{"session", "sso"},
		{"session", "logout"},
	} {
		cmd, rest, err := rootCmd.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		assert.Empty(t, rest)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestReadSecret(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetErr(&bytes.Buffer{})

	t.Setenv("ACADEMY_TEST_SECRET", "from-env")
	v, err := readSecret(cmd, "ACADEMY_TEST_SECRET", "> ")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)

	t.Setenv("ACADEMY_TEST_SECRET", "")
	cmd.SetIn(strings.NewReader("from-stdin\r\nignored\n"))
	v, err = readSecret(cmd, "ACADEMY_TEST_SECRET", "> ")
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", v)

	cmd.SetIn(strings.NewReader(""))
	_, err = readSecret(cmd, "ACADEMY_TEST_SECRET", "> ")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	err := describe(fmt.Errorf("me: %w", authclient.ErrNoSession))
	assert.Contains(t, err.Error(), "session login")

	apiErr := &authclient.APIError{
		Status:  http.StatusUnprocessableEntity,
		Message: "invalid input",
		Fields:  map[string]string{"email": "taken", "code": "expired"},
	}
	err = describe(apiErr)
	assert.True(t, errors.Is(err, apiErr))
	assert.Contains(t, err.Error(), "code: expired; email: taken")
}
