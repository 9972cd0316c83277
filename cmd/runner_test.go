package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/spotapp/internal/auth"
	"github.com/desertthunder/spotapp/internal/services"
	"github.com/desertthunder/spotapp/internal/shared"
	tu "github.com/desertthunder/spotapp/internal/testing"
)

const (
	testID     = "client-id"
	testSecret = "client-secret"
	testToken  = "access-token"
)

type cliHarness struct {
	runner  *Runner
	output  *bytes.Buffer
	tokens  *tu.TokenServer
	catalog *tu.CatalogServer
	config  string
}

func newCLIHarness(t *testing.T, secret string, routes map[string]string) *cliHarness {
	t.Helper()

	logger := shared.NewLogger(&bytes.Buffer{})
	h := &cliHarness{
		output:  &bytes.Buffer{},
		tokens:  tu.NewTokenServer(t, testID, testSecret, testToken),
		catalog: tu.NewCatalogServer(t, testToken, routes),
		config:  filepath.Join(t.TempDir(), "config.toml"),
	}

	provider, err := auth.NewProvider(shared.SpotifyConfig{ClientID: testID, ClientSecret: secret}, h.tokens.TokenURL(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h.runner = NewRunner(RunnerOpts{
		Catalog: services.NewSpotifyService(services.SpotifyOptions{BaseURL: h.catalog.URL, Logger: logger}),
		Tokens:  provider,
		Logger:  logger,
		Output:  h.output,
	})
	return h
}

func (h *cliHarness) run(args ...string) error {
	argv := append([]string{"spotapp", "--config", h.config}, args...)
	return h.runner.app().Run(context.Background(), argv)
}

const albumJSON = `{
	"id":"al1","name":"First Album","album_type":"album","release_date":"2020-01-02",
	"artists":[{"id":"ar1","name":"The Band"}],
	"tracks":{"items":[
		{"id":"t1","name":"Opener","track_number":1,"duration_ms":180000,"preview_url":"https://p.scdn.co/t1","artists":[{"id":"ar1","name":"The Band"}]},
		{"id":"t2","name":"Closer","track_number":2,"duration_ms":200000,"artists":[{"id":"ar1","name":"The Band"}]}
	],"total":2}
}`

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := services.NewSpotifyService(services.SpotifyOptions{})
			tokens := auth.StaticToken("tok")

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "custom.toml",
				Catalog:    catalog,
				Tokens:     tokens,
				HTTPClient: httpClient,
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "custom.toml" {
				t.Error("expected config path to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.service() != catalog {
				t.Error("expected catalog to be set")
			}
			if src, err := runner.tokenSource(); err != nil || src != tokens {
				t.Errorf("expected token source to be set, got %v", err)
			}
		})

		t.Run("with defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config")
			}
			if runner.configPath != "config.toml" {
				t.Errorf("expected default config path, got %s", runner.configPath)
			}
			if runner.output != os.Stdout {
				t.Error("expected stdout output")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected default HTTP client")
			}
			if runner.service() == nil {
				t.Error("expected a catalog built from config")
			}
		})

		t.Run("without credentials", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			_, err := runner.tokenSource()
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Fatalf("expected ErrMissingCredentials, got %v", err)
			}
			if !strings.Contains(err.Error(), "spotapp config init") {
				t.Errorf("expected setup hint, got %v", err)
			}

			config := shared.DefaultConfig()
			config.Credentials.Spotify.ClientID = "id-only"
			runner = NewRunner(RunnerOpts{Config: config})
			if _, err := runner.tokenSource(); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials with half a pair, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{
			"categories", "category", "albums", "album", "track", "artist", "playlists",
			"playlist", "podcasts", "podcast", "search", "export", "token", "tui", "config",
		} {
			if !names[want] {
				t.Errorf("expected %q command", want)
			}
		}
	})

	t.Run("configure", func(t *testing.T) {
		t.Run("loads the file and applies env overrides", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			config := shared.DefaultConfig()
			config.Credentials.Spotify.ClientID = "from-file"
			config.Browse.Country = "SE"
			if err := shared.SaveConfig(path, config); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			t.Setenv("SPOTAPP_CLIENT_ID", "from-env")

			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(&bytes.Buffer{})})
			if err := runner.app().Run(context.Background(), []string{"spotapp", "--config", path, "config", "show"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if runner.config.Credentials.Spotify.ClientID != "from-env" {
				t.Errorf("expected env override, got %s", runner.config.Credentials.Spotify.ClientID)
			}
			if runner.config.Browse.Country != "SE" {
				t.Errorf("expected file value, got %s", runner.config.Browse.Country)
			}
		})

		t.Run("rejects invalid config", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			config := shared.DefaultConfig()
			config.Browse.PageSize = 500
			if err := shared.SaveConfig(path, config); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(&bytes.Buffer{})})
			err := runner.app().Run(context.Background(), []string{"spotapp", "--config", path, "config", "show"})
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestBrowseCommands(t *testing.T) {
	t.Run("categories", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, map[string]string{
			"/browse/categories": `{"categories":` + tu.PagingJSON(2, 0, 20, `{"id":"pop","name":"Pop"}`, `{"id":"rock","name":"Rock"}`) + `}`,
		})

		if err := h.run("categories"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := h.output.String()
		for _, want := range []string{"Browse categories", "pop", "Rock", "Page 1 of 1 (2 results)"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
		if got := h.catalog.Hits.Last().URL.Query().Get("limit"); got != "20" {
			t.Errorf("expected category limit 20, got %s", got)
		}
	})

	t.Run("albums uses country and page", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, map[string]string{
			"/browse/new-releases": `{"albums":` + tu.PagingJSON(30, 12, 12, `{"id":"al1","name":"Fresh","release_date":"2024-05-01"}`) + `}`,
		})

		if err := h.run("albums", "--country", "jp", "--page", "2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		q := h.catalog.Hits.Last().URL.Query()
		if q.Get("country") != "JP" || q.Get("offset") != "12" || q.Get("limit") != "12" {
			t.Errorf("unexpected query %v", q)
		}
		if !strings.Contains(h.output.String(), "Page 2 of 3") {
			t.Errorf("unexpected output:\n%s", h.output.String())
		}
	})

	t.Run("albums rejects bad country", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, nil)
		if err := h.run("albums", "--country", "usa"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if h.tokens.Hits.Count() != 0 {
			t.Error("expected no token exchange")
		}
	})

	t.Run("album", func(t *testing.T) {
		tc := []struct {
			name string
			args []string
			want []string
		}{
			{"plain", []string{"album", "al1"}, []string{"First Album", "The Band - Opener (3:00)"}},
			{"json", []string{"--json", "album", "al1"}, []string{`"id":"al1"`, `"preview_url":"https://p.scdn.co/t1"`}},
			{"csv", []string{"--format", "csv", "album", "al1"}, []string{"#,ID,Title,Artists,Album,Duration,Preview", "1,t1,Opener,The Band,First Album,3:00,https://p.scdn.co/t1"}},
			{"markdown", []string{"--format", "markdown", "album", "al1"}, []string{"# First Album", "([preview](https://p.scdn.co/t1))"}},
		}

		for _, c := range tc {
			t.Run(c.name, func(t *testing.T) {
				h := newCLIHarness(t, testSecret, map[string]string{"/albums/al1": albumJSON})
				if err := h.run(c.args...); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				for _, want := range c.want {
					if !strings.Contains(h.output.String(), want) {
						t.Errorf("expected %q in output:\n%s", want, h.output.String())
					}
				}
			})
		}
	})

	t.Run("album errors", func(t *testing.T) {
		t.Run("missing id", func(t *testing.T) {
			h := newCLIHarness(t, testSecret, nil)
			if err := h.run("album"); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
			if h.catalog.Hits.Count() != 0 {
				t.Error("expected no catalog requests")
			}
		})

		t.Run("not found", func(t *testing.T) {
			h := newCLIHarness(t, testSecret, nil)
			err := h.run("album", "nope")
			if !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err.Error() != "resource not found: nope" {
				t.Errorf("expected a plain not found message, got %q", err.Error())
			}
		})

		t.Run("unknown format", func(t *testing.T) {
			h := newCLIHarness(t, testSecret, map[string]string{"/albums/al1": albumJSON})
			if err := h.run("--format", "xml", "album", "al1"); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})

	t.Run("failed exchange makes no catalog requests", func(t *testing.T) {
		h := newCLIHarness(t, "wrong", map[string]string{"/albums/al1": albumJSON})

		if err := h.run("album", "al1"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if h.tokens.Hits.Count() != 1 {
			t.Errorf("expected one exchange, got %d", h.tokens.Hits.Count())
		}
		if h.catalog.Hits.Count() != 0 {
			t.Errorf("expected no catalog requests, got %d", h.catalog.Hits.Count())
		}
	})

	t.Run("playlist pages tracks and skips removed items", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, map[string]string{
			"/playlists/pl1": `{"id":"pl1","name":"Mix","description":"<b>Fresh</b> &amp; new","owner":{"display_name":"ed"},"tracks":{"total":31}}`,
			"/playlists/pl1/tracks": tu.PagingJSON(31, 30, 30,
				`{"track":{"id":"t31","name":"Last","duration_ms":61000,"artists":[{"name":"Solo"}]}}`,
				`{"track":null}`,
			),
		})

		if err := h.run("playlist", "--page", "2", "pl1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := h.catalog.Hits.Last().URL.Query().Get("offset"); got != "30" {
			t.Errorf("expected offset 30, got %s", got)
		}
		out := h.output.String()
		if !strings.Contains(out, " 31. Solo - Last (1:01)") {
			t.Errorf("expected numbered track, got:\n%s", out)
		}
		if !strings.Contains(out, "Page 2 of 2") {
			t.Errorf("expected footer, got:\n%s", out)
		}
	})

	t.Run("podcasts default query and market", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, map[string]string{
			"/search": `{"shows":` + tu.PagingJSON(1, 0, 12, `{"id":"s1","name":"Tech Talk","publisher":"Pod Co"}`, `null`) + `}`,
		})

		if err := h.run("podcasts"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		q := h.catalog.Hits.Last().URL.Query()
		if q.Get("q") != "technology" || q.Get("market") != "PL" || q.Get("type") != "show" {
			t.Errorf("unexpected query %v", q)
		}
		if !strings.Contains(h.output.String(), "Tech Talk (Pod Co)") {
			t.Errorf("unexpected output:\n%s", h.output.String())
		}
	})

	t.Run("search", func(t *testing.T) {
		t.Run("multiple types", func(t *testing.T) {
			h := newCLIHarness(t, testSecret, map[string]string{
				"/search": `{
					"tracks":` + tu.PagingJSON(1, 0, 12, `{"id":"t1","name":"Dancing Queen","duration_ms":231000,"artists":[{"name":"ABBA"}]}`) + `,
					"artists":` + tu.PagingJSON(1, 0, 12, `{"id":"ar1","name":"ABBA","followers":{"total":1234567}}`) + `
				}`,
			})

			if err := h.run("search", "--type", "track", "--type", "artist", "abba"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := h.catalog.Hits.Last().URL.Query().Get("type"); got != "track,artist" {
				t.Errorf("expected both types, got %s", got)
			}
			out := h.output.String()
			for _, want := range []string{"Tracks (1 results)", "ABBA - Dancing Queen (3:51)", "1,234,567 followers"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
		})

		t.Run("unknown type", func(t *testing.T) {
			h := newCLIHarness(t, testSecret, nil)
			if err := h.run("search", "--type", "song", "abba"); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})

		t.Run("missing query", func(t *testing.T) {
			h := newCLIHarness(t, testSecret, nil)
			if err := h.run("search"); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("token", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, nil)
		if err := h.run("token"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(h.output.String(), testToken) {
			t.Error("expected token to stay hidden without --show")
		}

		h.output.Reset()
		if err := h.run("token", "--show"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(h.output.String()) != testToken {
			t.Errorf("expected token, got %q", h.output.String())
		}
	})
}

func TestConfigCommands(t *testing.T) {
	t.Run("init writes the example file once", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, nil)

		if err := h.run("config", "init"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := shared.LoadConfig(h.config); err != nil {
			t.Fatalf("expected a loadable config, got %v", err)
		}

		if err := h.run("config", "init"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument on second init, got %v", err)
		}
		if err := h.run("config", "init", "--force"); err != nil {
			t.Errorf("expected --force to overwrite, got %v", err)
		}
	})

	t.Run("interactive init needs a terminal", func(t *testing.T) {
		original := isTerminal
		isTerminal = func() bool { return false }
		t.Cleanup(func() { isTerminal = original })

		h := newCLIHarness(t, testSecret, nil)
		if err := h.run("config", "init", "--interactive"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("show masks the secret", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, nil)
		h.runner.config.Credentials.Spotify.ClientID = testID
		h.runner.config.Credentials.Spotify.ClientSecret = "supersecret1234"

		if err := h.run("config", "show"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := h.output.String()
		if strings.Contains(out, "supersecret") {
			t.Errorf("expected secret to be masked:\n%s", out)
		}
		if !strings.Contains(out, "***********1234") || !strings.Contains(out, testID) {
			t.Errorf("unexpected output:\n%s", out)
		}
		if h.runner.config.Credentials.Spotify.ClientSecret != "supersecret1234" {
			t.Error("expected the runner config to stay untouched")
		}
	})
}

func TestHelpers(t *testing.T) {
	t.Run("startPath", func(t *testing.T) {
		tc := []struct {
			arg, want string
		}{
			{"", "/"},
			{"albums", "/albums"},
			{"/search/abba", "/search/abba"},
			{"https://open.spotify.com/album/al1?si=x", "/albums/al1"},
			{"spotify:track:t1", "/track/t1"},
		}
		for _, c := range tc {
			got, err := startPath(c.arg)
			if err != nil {
				t.Errorf("startPath(%q) error: %v", c.arg, err)
				continue
			}
			if got != c.want {
				t.Errorf("startPath(%q) = %q, want %q", c.arg, got, c.want)
			}
		}
	})

	t.Run("maskSecret", func(t *testing.T) {
		tc := []struct {
			in, want string
		}{
			{"", ""},
			{"abc", "***"},
			{"abcdefgh", "****efgh"},
		}
		for _, c := range tc {
			if got := maskSecret(c.in); got != c.want {
				t.Errorf("maskSecret(%q) = %q, want %q", c.in, got, c.want)
			}
		}
	})
}

func TestExport(t *testing.T) {
	routes := map[string]string{
		"/albums/al1":           albumJSON,
		"/playlists/pl1":        `{"id":"pl1","name":"Mix","owner":{"display_name":"me"},"tracks":{"total":1}}`,
		"/playlists/pl1/tracks": tu.PagingJSON(1, 0, 50, `{"track":{"id":"x1","name":"Only","duration_ms":61000,"artists":[{"id":"a","name":"Solo"}]}}`),
	}

	t.Run("writes files and reports progress", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, routes)
		dir := t.TempDir()

		err := h.run("--format", "markdown", "export", "--output", dir, "--rate", "100", "album:al1", "https://open.spotify.com/playlist/pl1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := tu.MustReadFile(t, filepath.Join(dir, "album-al1.md")); !strings.Contains(got, "# First Album") {
			t.Errorf("unexpected album export:\n%s", got)
		}
		if got := tu.MustReadFile(t, filepath.Join(dir, "playlist-pl1.md")); !strings.Contains(got, "Solo - Only") {
			t.Errorf("unexpected playlist export:\n%s", got)
		}

		out := h.output.String()
		for _, want := range []string{"Fetching album:al1", "Exported 2/2 to " + dir, "export_manifest.json"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("json summary lists failures", func(t *testing.T) {
		h := newCLIHarness(t, testSecret, routes)

		if err := h.run("--json", "export", "--output", t.TempDir(), "--rate", "100", "album:al1", "album:missing"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := h.output.String()
		if strings.Contains(out, "Fetching") {
			t.Errorf("expected no progress lines with --json:\n%s", out)
		}
		if !strings.Contains(out, `"successful":1`) || !strings.Contains(out, `"failed":1`) {
			t.Errorf("unexpected summary:\n%s", out)
		}
	})

	t.Run("argument errors", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			err  error
		}{
			{name: "no sources", args: []string{"export"}, err: shared.ErrMissingArgument},
			{name: "bad source", args: []string{"export", "artist:ar1"}, err: shared.ErrInvalidArgument},
			{name: "bad format", args: []string{"--format", "xml", "export", "album:al1"}, err: shared.ErrInvalidFlag},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := newCLIHarness(t, testSecret, routes)
				if err := h.run(tt.args...); !errors.Is(err, tt.err) {
					t.Errorf("expected %v, got %v", tt.err, err)
				}
			})
		}
	})

	t.Run("failed exchange", func(t *testing.T) {
		h := newCLIHarness(t, "wrong-secret", routes)
		if err := h.run("export", "--output", t.TempDir(), "album:al1"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if h.catalog.Hits.Count() != 0 {
			t.Errorf("expected no catalog requests, got %d", h.catalog.Hits.Count())
		}
	})
}
