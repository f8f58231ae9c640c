package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/core"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	core.SetLogOutput(io.Discard)

	dir := t.TempDir()
	path := filepath.Join(dir, "lizual.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render]\nupdate_rate = 30\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *Config, 8)
	done := make(chan error, 1)
	w := NewWatcher(afero.NewOsFs(), nil)
	go func() {
		done <- w.Watch(ctx, path, func(c *Config) { changed <- c })
	}()

	// the watch is registered asynchronously; keep writing until it lands
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-changed:
			// a reload can race a half-written file and see defaults
			if cfg.Render.UpdateRate != 90 {
				continue
			}
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("[render]\nupdate_rate = 90\n"), 0o644))
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}
