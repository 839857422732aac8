package workflows

import (
	"context"
	"path/filepath"
	"testing"
)

func TestInspect_FlagsEncryptedValues(t *testing.T) {
	dir := t.TempDir()
	writeEnv(t, dir, ".env",
		"# legacy settings",
		"APP_KEY="+testMasterKey(),
		"DB_HOST=localhost",
		"DB_PASSWORD="+seal(t, testKey, "hunter2"),
		`MAIL_PASSWORD="`+seal(t, testKey, "mail")+`"`,
	)

	result, err := Inspect(context.Background(), InspectOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	if len(result.Files) != 1 {
		t.Fatalf("got %d files, want 1", len(result.Files))
	}
	file := result.Files[0]
	if !file.Exists {
		t.Error("Exists = false, want true")
	}
	if file.Path != filepath.Join(dir, ".env") {
		t.Errorf("Path = %q, want %q", file.Path, filepath.Join(dir, ".env"))
	}

	want := []struct {
		name      string
		encrypted bool
		masterKey bool
	}{
		{"APP_KEY", false, true},
		{"DB_HOST", false, false},
		{"DB_PASSWORD", true, false},
		{"MAIL_PASSWORD", true, false},
	}
	if len(file.Variables) != len(want) {
		t.Fatalf("got %d variables, want %d", len(file.Variables), len(want))
	}
	for i, w := range want {
		v := file.Variables[i]
		if v.Name != w.name || v.Encrypted != w.encrypted || v.MasterKey != w.masterKey {
			t.Errorf("Variables[%d] = %+v, want name=%s encrypted=%v masterKey=%v", i, v, w.name, w.encrypted, w.masterKey)
		}
	}

	if result.Summary.Variables != 4 || result.Summary.Encrypted != 2 {
		t.Errorf("Summary = %+v, want 4 variables and 2 encrypted", result.Summary)
	}
}

func TestInspect_MissingFile(t *testing.T) {
	dir := t.TempDir()

	result, err := Inspect(context.Background(), InspectOptions{
		EnvPatterns: []string{"missing.env"},
		Dir:         dir,
	})
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("got %d files, want 1", len(result.Files))
	}
	if result.Files[0].Exists {
		t.Error("Exists = true, want false")
	}
	if len(result.Files[0].Variables) != 0 {
		t.Errorf("got %d variables, want 0", len(result.Files[0].Variables))
	}
}
