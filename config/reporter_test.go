package config

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "final.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	tree := filepath.Join(dir, "tree")
	if err := os.MkdirAll(filepath.Join(tree, "sub"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tree, "sub", "a.html"), []byte("<p></p>"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r.Store("final.log", stored)
	r.Store("final.log", stored)
	r.Store("tree", tree)
	r.Store("missing", filepath.Join(dir, "absent"))
	r.StoreData("original/a.html", []byte(`<div fxFlex></div>`))
	r.StoreData("empty.txt", []byte{})

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["tree/sub/a.html"] != "<p></p>" {
		t.Errorf("tree/sub/a.html = %q", files["tree/sub/a.html"])
	}
	if files["original/a.html"] != `<div fxFlex></div>` {
		t.Errorf("original/a.html = %q", files["original/a.html"])
	}
	if _, ok := files["empty.txt"]; !ok {
		t.Error("empty data entry must be archived")
	}
	if _, ok := files["missing"]; ok {
		t.Error("absent files must be ignored")
	}
	if !strings.Contains(files["MANIFEST"], "original/a.html") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "/tmp/a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic when overwriting stored path")
		}
	}()
	r.Store("final.log", "/tmp/b.log")
}

func TestReport_StoreDataConcurrent(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.StoreData(fmt.Sprintf("original/%d.html", i), []byte("x"))
			r.StoreData("shared.html", []byte("y"))
		}()
	}
	wg.Wait()

	if len(r.entries) != 32 {
		t.Errorf("entries = %d, want 32", len(r.entries))
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	r.Store("x", "y")
	r.StoreData("x", nil)
	if r.Name() != "" {
		t.Error("Name() on nil report must be empty")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
