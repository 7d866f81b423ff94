package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

const watcherTestYAML = `products:
  - id: 1
    name: First
    price: 10
  - id: 2
    name: Second
    price: 20
`

func writeCatalog(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func startWatcher(t *testing.T, path string, initial *Catalog, onLoad func(*Catalog)) *Watcher {
	t.Helper()
	w, err := NewWatcher(path, initial, onLoad, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.debounce = 50 * time.Millisecond // keep the test fast
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return w
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, watcherTestYAML)

	initial, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	loads := make(chan *Catalog, 4)
	w := startWatcher(t, path, initial, func(c *Catalog) { loads <- c })
	defer w.Stop()

	writeCatalog(t, path, watcherTestYAML+`  - id: 3
    name: Third
    price: 30
`)

	select {
	case c := <-loads:
		if c.Len() != 3 {
			t.Errorf("reloaded catalog has %d products, want 3", c.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}

	waitFor(t, time.Second, func() bool { return w.Current().Len() == 3 })
}

func TestWatcher_KeepsLastGoodOnParseError(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, watcherTestYAML)

	initial, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	w := startWatcher(t, path, initial, nil)
	defer w.Stop()

	writeCatalog(t, path, "{definitely not yaml")

	// Give the watcher time to attempt (and reject) the reload.
	time.Sleep(500 * time.Millisecond)

	if got := w.Current().Len(); got != 2 {
		t.Errorf("catalog has %d products after bad write, want last good 2", got)
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, watcherTestYAML)

	initial, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, initial, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}
