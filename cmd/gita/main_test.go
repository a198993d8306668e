package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/randywick/gita/internal/client"
	"github.com/randywick/gita/internal/gitignore"
)

// fakeAPI serves the endpoints the commands use.
type fakeAPI struct {
	mu        sync.Mutex
	userCode  int
	creates   []string
	templates map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/user":
		if f.userCode != 0 {
			w.WriteHeader(f.userCode)
			io.WriteString(w, `{"message":"Bad credentials"}`)
			return
		}
		io.WriteString(w, `{"id": 42, "login": "octocat", "name": "Mona"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/user/repos":
		io.WriteString(w, `[
			{"id": 1, "name": "a", "owner": {"id": 42, "login": "octocat"}},
			{"id": 2, "name": "b", "owner": {"id": 7, "login": "someone"}}
		]`)
	case r.Method == http.MethodPost && r.URL.Path == "/user/repos":
		body, _ := io.ReadAll(r.Body)
		f.creates = append(f.creates, string(body))
		if strings.Contains(string(body), `"name":"taken"`) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"message":"Validation Failed","errors":[{"resource":"Repository","code":"custom","field":"name","message":"name already exists on this account"}]}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 99, "name": "foo", "private": true, "ssh_url": "git@github.com:octocat/foo.git", "git_url": "git://github.com/octocat/foo.git", "html_url": "https://github.com/octocat/foo"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/gitignore/templates":
		io.WriteString(w, `["Go","Node"]`)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/gitignore/templates/"):
		name := strings.TrimPrefix(r.URL.Path, "/gitignore/templates/")
		src, ok := f.templates[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Not Found"}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"name": name, "source": src})
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Not Found"}`)
	}
}

func (f *fakeAPI) createBodies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.creates...)
}

func setup(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{templates: map[string]string{"Go": "*.exe\n"}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	t.Setenv("GITA_API_URL", srv.URL)
	t.Setenv("GITA_GITHUB_API_KEY", "tok")
	t.Setenv("GITA_USER_AGENT", "")
	t.Setenv("GITA_DEFAULT_BRANCH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")
	return api
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	setup(t)

	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	want := "\nMy Repositories\n1  - a\n\nOther Repositories\n2  - b\n"
	if out != want {
		t.Errorf("list output =\n%q\nwant\n%q", out, want)
	}
}

func TestList_Mine(t *testing.T) {
	setup(t)

	out, err := execute(t, "list", "--mine")
	if err != nil {
		t.Fatalf("list --mine error = %v", err)
	}
	if strings.Contains(out, "Other Repositories") || !strings.Contains(out, "1  - a") {
		t.Errorf("list --mine output = %q", out)
	}
}

func TestList_JSONOthers(t *testing.T) {
	setup(t)

	out, err := execute(t, "list", "--others", "--json")
	if err != nil {
		t.Fatalf("list --others --json error = %v", err)
	}
	var repos []client.RepositorySummary
	if err := json.Unmarshal([]byte(out), &repos); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(repos) != 1 || repos[0].ID != 2 || repos[0].Owner.Login != "someone" {
		t.Errorf("repos = %+v", repos)
	}
}

func TestList_MineAndOthersExclusive(t *testing.T) {
	setup(t)

	if _, err := execute(t, "list", "--mine", "--others"); err == nil {
		t.Fatal("list --mine --others succeeded, want error")
	}
}

func TestCreate(t *testing.T) {
	api := setup(t)

	out, err := execute(t, "create", "foo", "-d", "bar", "--private")
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if bodies := api.createBodies(); len(bodies) != 1 || bodies[0] != `{"name":"foo","description":"bar","private":true}` {
		t.Errorf("create bodies = %v", bodies)
	}
	for _, want := range []string{"Created Repository", "SSH URL  git@github.com:octocat/foo.git", "ID       99"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCreate_ValidationError(t *testing.T) {
	setup(t)

	out, err := execute(t, "create", "taken")
	if err == nil {
		t.Fatal("create of an existing name succeeded, want error")
	}
	if !strings.Contains(out, "- Repository name already exists on this account") || !strings.Contains(out, "Repository was NOT created") {
		t.Errorf("output = %q", out)
	}
}

func TestWhoami(t *testing.T) {
	setup(t)

	out, err := execute(t, "whoami")
	if err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if out != "octocat (id 42)\nMona\n" {
		t.Errorf("whoami output = %q", out)
	}
}

func TestWhoami_BadCredentials(t *testing.T) {
	api := setup(t)
	api.userCode = http.StatusUnauthorized

	_, err := execute(t, "whoami")
	if !errors.Is(err, client.ErrInitFailed) {
		t.Fatalf("whoami error = %v, want ErrInitFailed", err)
	}
}

func TestTemplates(t *testing.T) {
	setup(t)

	out, err := execute(t, "templates")
	if err != nil {
		t.Fatalf("templates error = %v", err)
	}
	if out != "Go\nNode\n" {
		t.Errorf("templates output = %q", out)
	}
}

func TestGitignore_ByType(t *testing.T) {
	setup(t)
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t, "gitignore", "--type", "go")
	if err != nil {
		t.Fatalf("gitignore error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "*.exe\n" {
		t.Errorf(".gitignore = %q", got)
	}
	if !strings.Contains(out, "Created .gitignore for Go") {
		t.Errorf("output = %q", out)
	}
}

func TestGitignore_ExistingFile(t *testing.T) {
	setup(t)
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("keep\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "gitignore", "--type", "Go"); err == nil {
		t.Fatal("gitignore over an existing file succeeded without --force")
	}
	if _, err := execute(t, "gitignore", "--type", "Go", "--force"); err != nil {
		t.Fatalf("gitignore --force error = %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if string(got) != "*.exe\n" {
		t.Errorf(".gitignore = %q after --force", got)
	}
}

func TestGitignore_UnknownType(t *testing.T) {
	setup(t)
	chdir(t, t.TempDir())

	_, err := execute(t, "gitignore", "--type", "Cobol")
	if !errors.Is(err, gitignore.ErrTemplateNotFound) {
		t.Fatalf("gitignore error = %v, want ErrTemplateNotFound", err)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
