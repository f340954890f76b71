package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robalobadob/pokeguess/internal/game"
	"github.com/robalobadob/pokeguess/internal/session"
)

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	p := session.New("a", 20, game.Fixed(5))
	if err := st.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Get(ctx, "a")
	if err != nil || got != p {
		t.Fatalf("Get(a) = %p, %v", got, err)
	}
	if st.Len() != 1 {
		t.Fatalf("Len() = %d", st.Len())
	}

	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v", err)
	}
	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	idle := session.New("idle", 20, nil)
	watched := session.New("watched", 20, nil)
	watched.Subscribe(4, nil)
	_ = st.Save(ctx, idle)
	_ = st.Save(ctx, watched)

	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	fresh := session.New("fresh", 20, nil)
	_ = st.Save(ctx, fresh)

	n, err := st.Sweep(ctx, cutoff)
	if err != nil || n != 1 {
		t.Fatalf("Sweep = %d, %v; want 1", n, err)
	}
	if _, err := st.Get(ctx, "idle"); !errors.Is(err, ErrNotFound) {
		t.Fatal("idle player survived sweep")
	}
	for _, id := range []string{"watched", "fresh"} {
		if _, err := st.Get(ctx, id); err != nil {
			t.Fatalf("%s evicted: %v", id, err)
		}
	}
}

func TestGetOrCreateIsAtomic(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	var (
		calls atomic.Int32
		wg    sync.WaitGroup
		got   [16]*session.Player
	)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, _, err := st.GetOrCreate(ctx, "evicted", func() *session.Player {
				calls.Add(1)
				return session.New("evicted", 20, game.Fixed(5))
			})
			if err != nil {
				t.Errorf("GetOrCreate: %v", err)
			}
			got[i] = p
		}(i)
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("create called %d times, want 1", n)
	}
	for i, p := range got {
		if p != got[0] {
			t.Fatalf("caller %d got a different player", i)
		}
	}

	p, created, err := st.GetOrCreate(ctx, "evicted", func() *session.Player {
		t.Fatal("create called for a stored player")
		return nil
	})
	if err != nil || created || p != got[0] {
		t.Fatalf("GetOrCreate(existing) = %p created=%v err=%v", p, created, err)
	}
}
