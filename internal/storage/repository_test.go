package storage

import (
	"context"
	"strings"
	"testing"
)

type stubRepo struct{}

func (stubRepo) Replace(ctx context.Context, columns []Column, rows [][]any) (int64, error) {
	return 0, nil
}
func (stubRepo) Close() error { return nil }

func TestFactory_RegisterAndNew(t *testing.T) {
	Register("stub", func(ctx context.Context, cfg Config) (Repository, error) {
		return stubRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: "stub"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := repo.(stubRepo); !ok {
		t.Errorf("New returned %T, want stubRepo", repo)
	}
}

func TestFactory_UnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "oracle"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), `"oracle"`) {
		t.Errorf("error %q does not name the unknown kind", err)
	}
}
