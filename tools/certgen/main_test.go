package main

import (
	"crypto/tls"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestSplitHosts(t *testing.T) {
	got := splitHosts(" localhost, ,127.0.0.1,")
	want := []string{"localhost", "127.0.0.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitHosts = %v; want %v", got, want)
	}
	if got := splitHosts(""); len(got) != 0 {
		t.Errorf("splitHosts(\"\") = %v; want empty", got)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath, err := run(dir, []string{"localhost"}, time.Hour)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if certPath != filepath.Join(dir, "server.crt") || keyPath != filepath.Join(dir, "server.key") {
		t.Errorf("unexpected paths %q %q", certPath, keyPath)
	}
	if _, err := tls.LoadX509KeyPair(certPath, keyPath); err != nil {
		t.Errorf("LoadX509KeyPair: %v", err)
	}
}

func TestRun_NoHosts(t *testing.T) {
	if _, _, err := run(t.TempDir(), nil, time.Hour); err == nil {
		t.Error("expected error without hosts")
	}
}
