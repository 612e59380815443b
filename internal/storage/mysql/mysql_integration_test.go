//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_insights/internal/domain"
	mysqlrepo "hotel_insights/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pint(i int) *int           { return &i }
func pfloat(f float64) *float64 { return &f }

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotels",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotels?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertListAndSource(t *testing.T) {
	db := startMySQL(t)
	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	hs := []domain.HotelRecord{
		{
			Name: "Galle Face Hotel", District: "Colombo", Address: "2 Galle Road", Region: "Western",
			Rooms: pint(156), Grade: pint(5), Lat: pfloat(6.9204), Lon: pfloat(79.8446),
			HotelType: pstr("City Hotel"), SizeCategory: pstr("Large"),
		},
		{Name: "Hill Lodge", District: "Kandy", Address: "Peradeniya Rd", Region: "Central", Grade: pint(2)},
	}
	if err := repo.UpsertHotels(ctx, hs); err != nil {
		t.Fatalf("UpsertHotels: %v", err)
	}

	// re-upsert with a change: same key, no new row
	hs[1].Rooms = pint(12)
	if err := repo.UpsertHotels(ctx, hs[1:]); err != nil {
		t.Fatalf("UpsertHotels again: %v", err)
	}

	// exact duplicates in one batch collapse into one row
	if err := repo.UpsertHotels(ctx, []domain.HotelRecord{hs[1], hs[1]}); err != nil {
		t.Fatalf("UpsertHotels duplicates: %v", err)
	}

	n, err := repo.CountHotels(ctx)
	if err != nil || n != 2 {
		t.Fatalf("CountHotels = %d, %v", n, err)
	}

	ds, err := mysqlrepo.NewSource(repo).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 2 || !ds.Has(domain.CapCoordinates) {
		t.Fatalf("unexpected dataset: len=%d", ds.Len())
	}
	got := ds.At(1)
	if got.Name != "Hill Lodge" || got.Rooms == nil || *got.Rooms != 12 || got.Lat != nil || got.HotelType != nil {
		t.Fatalf("unexpected record: %+v", got)
	}
	if first := ds.At(0); first.SizeCategory == nil || *first.SizeCategory != "Large" {
		t.Fatalf("unexpected record: %+v", first)
	}
}
