package secret_test

import (
	"testing"

	"airnav/internal/secret"
)

func TestEnvStoreRoundTrip(t *testing.T) {
	s := secret.NewEnvStore()

	if v, err := s.Get("postgres"); err != nil || v != nil {
		t.Fatalf("expected absent secret, got %q %v", v, err)
	}

	if err := s.Set("postgres", []byte("hunter2")); err != nil {
		t.Fatalf("set: %v", err)
	}
	t.Cleanup(func() { s.Delete("postgres") })

	v, err := s.Get("postgres")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(v) != "hunter2" {
		t.Fatalf("value = %q", v)
	}

	if err := s.Delete("postgres"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if v, _ := s.Get("postgres"); v != nil {
		t.Fatalf("secret survived delete: %q", v)
	}
}

func TestEnvStoreKeyMangling(t *testing.T) {
	s := secret.NewEnvStore()
	// dashes and dots must map to a valid variable name
	if err := s.Set("prod.replica-1", []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	t.Cleanup(func() { s.Delete("prod.replica-1") })

	v, err := s.Get("prod.replica-1")
	if err != nil || string(v) != "x" {
		t.Fatalf("got %q %v", v, err)
	}
}
