package generator

import (
	"sync"
	"testing"
)

func TestSourcesStayInRange(t *testing.T) {
	sources := map[string]Source{
		"math":   NewSource(),
		"seeded": NewSeededSource(3),
		"crypto": CryptoSource{},
		"locked": Locked(NewSource()),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				if v := src.IntN(9); v < 0 || v >= 9 {
					t.Fatalf("IntN(9) = %d", v)
				}
			}
		})
	}
}

func TestSeededSourceIsReproducible(t *testing.T) {
	req := Request{Length: 20, Classes: NewClassSet(AllClasses...)}

	a := Generate(req, NewSeededSource(5))
	b := Generate(req, NewSeededSource(5))
	if a.Password != b.Password {
		t.Errorf("same seed produced %q and %q", a.Password, b.Password)
	}
}

func TestLockedSourceConcurrentUse(t *testing.T) {
	src := Locked(NewSeededSource(11))
	req := Request{Length: 30, Classes: NewClassSet(Lowercase, Digits)}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if res := Generate(req, src); len(res.Password) != 30 {
					t.Errorf("unexpected length %d", len(res.Password))
				}
			}
		}()
	}
	wg.Wait()
}

func TestSourceByName(t *testing.T) {
	if _, ok := SourceByName("math"); !ok {
		t.Error("math source should resolve")
	}
	if src, ok := SourceByName("crypto"); !ok {
		t.Error("crypto source should resolve")
	} else if _, isCrypto := src.(CryptoSource); !isCrypto {
		t.Errorf("crypto resolved to %T", src)
	}
	if _, ok := SourceByName("dice"); ok {
		t.Error("unknown source should not resolve")
	}
}
