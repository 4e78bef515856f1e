package database

import (
	"testing"

	"krishi/pkg/backend"
)

func TestOpenMigratesBackendTables(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, m := range backend.Models() {
		if !db.Migrator().HasTable(m) {
			t.Fatalf("missing table for %T", m)
		}
	}
	u := &backend.User{Username: "alice", Email: "a@x.com"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Create(&backend.User{Username: "alice", Email: "b@x.com"}).Error; err == nil {
		t.Fatalf("duplicate username accepted")
	}
}
