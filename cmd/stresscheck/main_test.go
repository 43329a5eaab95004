package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/drhelai/helai/internal/lexicon"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEXICON_PATH", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreArgsJSON(t *testing.T) {
	out, err := execute(t, "", "score", "--json", "I want to end my life", "hello")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	dec := json.NewDecoder(strings.NewReader(out))
	var crisis, calm scoreResult
	if err := dec.Decode(&crisis); err != nil {
		t.Fatalf("decode first result: %v", err)
	}
	if err := dec.Decode(&calm); err != nil {
		t.Fatalf("decode second result: %v", err)
	}

	if crisis.Level != 10 || !crisis.IsCrisis || crisis.Label != "Crisis" {
		t.Errorf("Unexpected crisis result: %+v", crisis)
	}
	if calm.Level != 3 || calm.IsCrisis || calm.Label != "Low Stress" {
		t.Errorf("Unexpected calm result: %+v", calm)
	}
}

func TestScoreStdin(t *testing.T) {
	out, err := execute(t, "I'm overwhelmed\n\n  \nfine\n", "score")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 result lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "8") {
		t.Errorf("Expected panic floor 8 on first line, got %q", lines[0])
	}
}

func TestScoreWithLexiconOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte("crisis_keywords: [\"give up\"]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "--lexicon", path, "score", "--json", "I want to give up")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	var res scoreResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Level != 10 {
		t.Errorf("Expected override crisis keyword to force 10, got %d", res.Level)
	}
}

func TestLexiconDump(t *testing.T) {
	out, err := execute(t, "", "lexicon")
	if err != nil {
		t.Fatalf("lexicon failed: %v", err)
	}

	var lex lexicon.Lexicon
	if err := yaml.Unmarshal([]byte(out), &lex); err != nil {
		t.Fatalf("decode lexicon: %v", err)
	}
	if len(lex.Topics) != len(lexicon.Default().Topics) {
		t.Errorf("Expected %d topics, got %d", len(lexicon.Default().Topics), len(lex.Topics))
	}
}

func TestLexiconMissingFile(t *testing.T) {
	if _, err := execute(t, "", "--lexicon", filepath.Join(t.TempDir(), "missing.yaml"), "lexicon"); err == nil {
		t.Error("Expected error for missing lexicon file")
	}
}
