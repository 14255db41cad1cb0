package cache

import (
	"testing"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

func TestPutAndGet(t *testing.T) {
	c := New()

	listing := []model.Entry{
		{Name: "docs", Kind: model.KindDir},
		{Name: "readme.txt", Kind: model.KindFile, Size: 42},
	}
	c.Put("/home/alice", listing)

	got, ok := c.Get("/home/alice")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1].Name != "readme.txt" || got[1].Size != 42 {
		t.Errorf("unexpected entry %+v", got[1])
	}
}

func TestGetMiss(t *testing.T) {
	c := New()

	if _, ok := c.Get("/nowhere"); ok {
		t.Error("expected cache miss")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	c := New()
	c.Put("/p", []model.Entry{{Name: "a.txt", Kind: model.KindFile}})

	got, _ := c.Get("/p")
	got[0].Name = "mutated"

	again, _ := c.Get("/p")
	if again[0].Name != "a.txt" {
		t.Errorf("cache contents mutated through a returned slice: %s", again[0].Name)
	}
}

func TestInvalidate(t *testing.T) {
	c := New()
	c.Put("/a", []model.Entry{{Name: "x", Kind: model.KindFile}})
	c.Put("/b", []model.Entry{{Name: "y", Kind: model.KindFile}})

	c.Invalidate("/a")

	if _, ok := c.Get("/a"); ok {
		t.Error("expected /a to be invalidated")
	}
	if _, ok := c.Get("/b"); !ok {
		t.Error("expected /b to survive")
	}
}

func TestInvalidateAll(t *testing.T) {
	c := New()
	c.Put("/a", nil)
	c.Put("/b", nil)

	c.InvalidateAll()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d paths", c.Len())
	}
}
