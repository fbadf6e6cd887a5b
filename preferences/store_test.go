package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/basekit-go/basekit/preferences"
	"github.com/basekit-go/basekit/status"
	"github.com/basekit-go/basekit/value"
)

// storeUnderTest runs the Store contract tests against every implementation.
func storeUnderTest(t *testing.T, name string, open func(t *testing.T) preferences.Store) {
	t.Run(name+"/MissingPathIsNotFound", func(t *testing.T) {
		store := open(t)

		_, err := store.GetValue("absent.path")
		if got := status.CodeOf(err); got != status.CodeNotFound {
			t.Errorf("error code: got = %v, want %v", got, status.CodeNotFound)
		}
	})

	t.Run(name+"/SetThenGet", func(t *testing.T) {
		store := open(t)

		want := value.NewObject(value.Object{
			"width":  value.NewInt(1280),
			"title":  value.NewString("basekit"),
			"pinned": value.NewBool(true),
		})
		if err := store.SetValue("window", want); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}

		got, err := store.GetValue("window")
		if err != nil {
			t.Fatalf("GetValue failed: %v", err)
		}
		if !value.Equal(got, want) {
			t.Errorf("GetValue: got = %v, want %v", got, want)
		}
	})

	t.Run(name+"/SetReplaces", func(t *testing.T) {
		store := open(t)

		if err := store.SetValue("theme", value.NewString("light")); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}
		if err := store.SetValue("theme", value.NewString("dark")); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}

		got, err := store.GetValue("theme")
		if err != nil {
			t.Fatalf("GetValue failed: %v", err)
		}
		if got.GetString() != "dark" {
			t.Errorf("GetValue: got = %q, want %q", got.GetString(), "dark")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, "memory", func(t *testing.T) preferences.Store {
		return preferences.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	storeUnderTest(t, "sqlite", func(t *testing.T) preferences.Store {
		store, err := preferences.OpenSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
		if err != nil {
			t.Fatalf("OpenSQLiteStore failed: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := preferences.NewMemoryStore()

	if err := store.SetValue("list", value.NewArray(value.Array{value.NewInt(1)})); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, err := store.GetValue("list")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	got.GetArray()[0] = value.NewInt(99)

	again, err := store.GetValue("list")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if again.GetArray()[0].GetInt() != 1 {
		t.Error("mutating a returned value leaked into the store")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")

	store, err := preferences.OpenSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	if err := store.SetValue("volume", value.NewNumber(0.8)); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := preferences.OpenSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetValue("volume")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if got.GetFloat64() != 0.8 {
		t.Errorf("GetValue after reopen: got = %v, want 0.8", got.GetFloat64())
	}
}
