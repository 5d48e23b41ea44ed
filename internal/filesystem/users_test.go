package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const passwdFixture = `# system accounts
root:x:0:0:root:/root:/bin/bash
zed:x:1002:1002::/home/zed:/bin/sh
alice:x:1000:1000:Alice:/home/alice:/bin/bash

broken:line
bob:x:notanumber:1001::/home/bob:/bin/sh
`

func TestParsePasswd(t *testing.T) {
	users, err := ParsePasswd(strings.NewReader(passwdFixture))
	if err != nil {
		t.Fatalf("ParsePasswd() error = %v", err)
	}

	want := []User{
		{Name: "alice", UID: 1000, GID: 1000, Home: "/home/alice"},
		{Name: "root", UID: 0, GID: 0, Home: "/root"},
		{Name: "zed", UID: 1002, GID: 1002, Home: "/home/zed"},
	}
	if len(users) != len(want) {
		t.Fatalf("ParsePasswd() returned %d users, want %d: %+v", len(users), len(want), users)
	}
	for i := range want {
		if users[i] != want[i] {
			t.Errorf("ParsePasswd()[%d] = %+v, want %+v", i, users[i], want[i])
		}
	}
}

func TestPasswdSource_Users(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwd")
	if err := os.WriteFile(path, []byte(passwdFixture), 0644); err != nil {
		t.Fatalf("Failed to write passwd: %v", err)
	}

	users, err := NewPasswdSource(path).Users()
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if len(users) != 3 {
		t.Errorf("Users() returned %d users, want 3", len(users))
	}

	if _, err := NewPasswdSource(filepath.Join(t.TempDir(), "missing")).Users(); err == nil {
		t.Error("Users() expected error for missing file, got nil")
	}
}
