package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spacesedan/esgpulse/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze_Local(t *testing.T) {
	t.Chdir(t.TempDir())
	body := "The company expanded its renewable solar program and cut carbon emissions across every plant this year."
	if err := os.WriteFile(filepath.Join(".", "article.txt"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "analyze", "--title", "Solar expansion", "--file", "article.txt", "--local")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Source != models.SourceLocal || result.Category != models.CategoryEnvironmental {
		t.Errorf("result = %+v", result)
	}
}

func TestAnalyze_RequiresInput(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := run(t, "analyze", "--title", "Solar expansion"); err == nil {
		t.Fatal("expected an error without content")
	}
}

func TestConfigShow_MasksSecrets(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HUGGINGFACE_TOKEN", "hf_secret")
	t.Setenv("NEWS_API_KEY", "news_secret")
	t.Setenv("PORT", "9191")

	out, err := run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "hf_secret") || strings.Contains(out, "news_secret") {
		t.Errorf("secrets leaked:\n%s", out)
	}
	if !strings.Contains(out, "port: 9191") || !strings.Contains(out, "********") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFetch_WithoutNewsKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NEWS_API_KEY", "")
	if _, err := run(t, "fetch", "--topic", "social"); err == nil || !strings.Contains(err.Error(), "NEWS_API_KEY") {
		t.Fatalf("err = %v", err)
	}
}
