package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleConfig = `
messagedirector:
    bind: 127.0.0.1:57123

general:
    dc_files:
        - game.dc

roles:
    - type: stateserver
      control: 100100
`

func TestParseBytes_Structure(t *testing.T) {
	root, err := ParseBytes([]byte(sampleConfig), "astrond.yml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if !root.IsMapping() {
		t.Fatalf("root kind = %v, want mapping", root.Kind)
	}
	if got, want := root.Keys(), []string{"messagedirector", "general", "roles"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	md, ok := root.Get("messagedirector")
	if !ok {
		t.Fatal("messagedirector section missing")
	}
	bind, ok := md.Get("bind")
	if !ok || bind.Value != "127.0.0.1:57123" || bind.Tag != TagString {
		t.Errorf("bind = %+v", bind)
	}
	if bind.Location.Line != 3 {
		t.Errorf("bind line = %d, want 3", bind.Location.Line)
	}
	if bind.Location.File != "astrond.yml" {
		t.Errorf("bind file = %q", bind.Location.File)
	}

	roles, _ := root.Get("roles")
	if !roles.IsSequence() || len(roles.Items) != 1 {
		t.Fatalf("roles = %+v", roles)
	}
	control, ok := roles.Items[0].Get("control")
	if !ok || control.Tag != TagInt || control.Value != "100100" {
		t.Errorf("control = %+v", control)
	}
}

func TestParseBytes_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\n"} {
		root, err := ParseBytes([]byte(input), "empty.yml")
		if err != nil {
			t.Fatalf("ParseBytes(%q) error = %v", input, err)
		}
		if !root.IsNull() {
			t.Errorf("ParseBytes(%q) kind = %v, want null", input, root.Kind)
		}
	}
}

func TestParseBytes_NullValues(t *testing.T) {
	root, err := ParseBytes([]byte("general:\nroles: ~\n"), "nulls.yml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	for _, key := range []string{"general", "roles"} {
		v, ok := root.Get(key)
		if !ok {
			t.Fatalf("%s missing", key)
		}
		if !v.IsNull() {
			t.Errorf("%s kind = %v, want null", key, v.Kind)
		}
	}
}

func TestParseBytes_SyntaxError(t *testing.T) {
	_, err := ParseBytes([]byte("roles:\n  - type: stateserver\n   control: [1, 2\n"), "broken.yml")
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.File != "broken.yml" {
		t.Errorf("File = %q", perr.File)
	}
	if perr.Line == 0 {
		t.Errorf("expected a line number in %v", err)
	}
	if !strings.Contains(err.Error(), "broken.yml") {
		t.Errorf("error %q does not name the file", err.Error())
	}
}

func TestParseBytes_AliasesAndMerge(t *testing.T) {
	input := `
defaults: &ss
  type: stateserver
  control: 100100
roles:
  - *ss
  - <<: *ss
    control: 100200
`
	root, err := ParseBytes([]byte(input), "alias.yml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	roles, _ := root.Get("roles")
	if len(roles.Items) != 2 {
		t.Fatalf("roles len = %d", len(roles.Items))
	}

	first := roles.Items[0]
	if v, _ := first.Get("type"); v == nil || v.Value != "stateserver" {
		t.Errorf("alias not resolved: %+v", first)
	}

	second := roles.Items[1]
	if got, want := second.Keys(), []string{"control", "type"}; !reflect.DeepEqual(got, want) {
		t.Errorf("merged keys = %v, want %v", got, want)
	}
	if v, _ := second.Get("control"); v.Value != "100200" {
		t.Errorf("explicit key should win over merge, got %q", v.Value)
	}
}

func TestParseBytes_AliasExpansionLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(sampleConfig)
	sb.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 7; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*a%d, ", i-1), 10), ", ")
		fmt.Fprintf(&sb, "a%d: &a%d [%s]\n", i, i, refs)
	}

	start := time.Now()
	_, err := ParseBytes([]byte(sb.String()), "bomb.yml")
	if err == nil {
		t.Fatal("expected alias expansion error")
	}
	if !errors.Is(err, ErrAliasExpansion) {
		t.Errorf("error = %v, want ErrAliasExpansion", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.File != "bomb.yml" || perr.Line == 0 {
		t.Errorf("error = %#v, want *ParseError with file and line", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("rejecting the document took %v", elapsed)
	}
}

func TestParseBytes_AliasReuseWithinBudget(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("common: &ss {type: stateserver, control: 100100}\nroles:\n")
	for range 200 {
		sb.WriteString("  - *ss\n")
	}

	root, err := ParseBytes([]byte(sb.String()), "reuse.yml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if roles, _ := root.Get("roles"); len(roles.Items) != 200 {
		t.Errorf("roles len = %d, want 200", len(roles.Items))
	}
}

func TestParseBytes_DuplicateKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "role attribute",
			input:    "roles:\n  - type: stateserver\n    control: 100100\n    control: 100\n",
			wantLine: 4,
			wantMsg:  `mapping key "control" already defined at line 3`,
		},
		{
			name:     "role type",
			input:    "roles:\n  - type: stateserver\n    type: bogus\n",
			wantLine: 3,
			wantMsg:  `mapping key "type" already defined at line 2`,
		},
		{
			name:     "top-level section",
			input:    "messagedirector:\n  bind: 127.0.0.1:57123\nroles: []\nmessagedirector:\n  bind: 127.0.0.1:57124\n",
			wantLine: 4,
			wantMsg:  `mapping key "messagedirector" already defined at line 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input), "dup.yml")
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", perr.Line, tt.wantLine)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseBytes_MergeDoesNotCountAsDuplicate(t *testing.T) {
	input := "base: &b {control: 100100}\nrole:\n  <<: *b\n  control: 100200\n"
	root, err := ParseBytes([]byte(input), "merge.yml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	role, _ := root.Get("role")
	if v, _ := role.Get("control"); v == nil || v.Value != "100200" {
		t.Errorf("control = %+v, want 100200", v)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astrond.yml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	root, err := ParseFile(path, 0)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if root.Location.File != path {
		t.Errorf("root file = %q, want %q", root.Location.File, path)
	}

	if _, err := ParseFile(path, 10); err == nil {
		t.Error("expected size limit error")
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.yml"), 0); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ParseFile(dir, 0); err == nil {
		t.Error("expected error for directory")
	}
}

func TestMapConstructor(t *testing.T) {
	n := Map("bind", "0.0.0.0:7199", "threaded", true, "control", 100100, "nothing", nil)

	if got, want := n.Keys(), []string{"bind", "threaded", "control", "nothing"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if v, _ := n.Get("threaded"); v.Tag != TagBool || v.Value != "true" {
		t.Errorf("threaded = %+v", v)
	}
	if v, _ := n.Get("control"); v.Tag != TagInt || v.Value != "100100" {
		t.Errorf("control = %+v", v)
	}
	if v, _ := n.Get("nothing"); !v.IsNull() {
		t.Errorf("nothing = %+v", v)
	}
	if _, ok := n.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{}, "<unknown>"},
		{Location{Line: 3, Column: 5}, "3:5"},
		{Location{File: "a.yml", Line: 3, Column: 5}, "a.yml:3:5"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.loc, got, tt.want)
		}
	}
}
