package cli_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recipe_manager/internal/api"
	"recipe_manager/internal/cli"
	"recipe_manager/internal/client"
	"recipe_manager/internal/service"
	"recipe_manager/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShell(t *testing.T) (*cli.Shell, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := testutil.NewSQLiteStore(t)
	r := gin.New()
	api.RegisterRoutes(r, api.Services{
		Users:     service.NewUserService(store, "test-secret", time.Hour),
		Recipes:   service.NewRecipeService(store, store, nil),
		Auth:      store,
		JWTSecret: "test-secret",
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	tokens := client.NewFileTokenStore(filepath.Join(t.TempDir(), "session.json"))
	var out bytes.Buffer
	return cli.New(client.New(srv.URL+"/api", tokens), &out), &out
}

// run executes one line and returns what it printed
func run(t *testing.T, sh *cli.Shell, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, sh.Execute(context.Background(), cli.ParseArgs(line)), line)
	return out.String()
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"recipes", []string{"recipes"}},
		{"login  a@x.com   pw", []string{"login", "a@x.com", "pw"}},
		{`create "Tomato soup" "Boil it" img Water:1L`, []string{"create", "Tomato soup", "Boil it", "img", "Water:1L"}},
		{`profile chef ""`, []string{"profile", "chef", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ParseArgs(tt.line))
		})
	}
}

func TestShellSession(t *testing.T) {
	ctx := context.Background()
	sh, out := newShell(t)

	assert.Contains(t, run(t, sh, out, "whoami"), "not logged in")
	run(t, sh, out, "register alice alice@x.com secret1")
	assert.Contains(t, run(t, sh, out, "login alice@x.com secret1"), "alice logged in successfully")
	assert.NotContains(t, run(t, sh, out, "whoami"), "not logged in")

	created := run(t, sh, out, `create Soup "Boil it" http://x/y.jpg Water:1L Salt:pinch:optional`)
	require.True(t, strings.HasPrefix(created, "created "))
	id := strings.TrimSpace(strings.TrimPrefix(created, "created "))

	assert.Contains(t, run(t, sh, out, "recipes"), "Soup  (by alice)")
	shown := run(t, sh, out, "show "+id)
	assert.Contains(t, shown, "- Water: 1L")
	assert.Contains(t, shown, "- Salt: pinch (optional)")

	run(t, sh, out, "save "+id)
	assert.Contains(t, run(t, sh, out, "saved"), id)
	err := sh.Execute(ctx, cli.ParseArgs("save "+id))
	assert.ErrorContains(t, err, "Recipe already saved")

	run(t, sh, out, "unsave "+id)
	assert.Contains(t, run(t, sh, out, "saved"), "no saved recipes")

	run(t, sh, out, "delete "+id)
	assert.Contains(t, run(t, sh, out, "recipes"), "no recipes")

	run(t, sh, out, "logout")
	assert.Contains(t, run(t, sh, out, "whoami"), "not logged in")
}

func TestShellRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	sh, _ := newShell(t)

	assert.ErrorContains(t, sh.Execute(ctx, []string{"cook"}), "unknown command")
	assert.ErrorContains(t, sh.Execute(ctx, []string{"login", "a@x.com"}), "usage: login")
	assert.ErrorContains(t, sh.Execute(ctx, cli.ParseArgs("create Soup steps img Water")), "bad ingredient")
	assert.ErrorContains(t, sh.Execute(ctx, []string{"saved"}), "login required")
}
