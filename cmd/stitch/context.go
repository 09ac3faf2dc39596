package main

import (
	"log/slog"
	"strings"
	"sync"

	"stitch/internal/config"
	"stitch/internal/logging"
	"stitch/internal/media"
	"stitch/internal/media/ffmpeg"
	"stitch/internal/probecache"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildToolset wires the external tool clients from configuration. The probe
// cache is best-effort: failure to open it degrades to uncached probing.
func buildToolset(cfg *config.Config, logger *slog.Logger) (media.Toolset, func(), error) {
	client, err := ffmpeg.New(cfg.Tools.FFmpegBinary,
		ffmpeg.WithLogger(logging.WithComponent(logger, "ffmpeg")))
	if err != nil {
		return media.Toolset{}, nil, err
	}

	var prober media.Prober = media.FFprobeProber{Binary: cfg.Tools.FFprobeBinary}
	cleanup := func() {}
	if cfg.ProbeCache.Enabled {
		store, err := probecache.Open(cfg.ProbeCache.Path)
		if err != nil {
			logger.Warn("probe cache unavailable, probing directly",
				"path", cfg.ProbeCache.Path, logging.Error(err))
		} else {
			prober = &probecache.Prober{
				Inner:  prober,
				Store:  store,
				Logger: logging.WithComponent(logger, "probecache"),
			}
			cleanup = func() { _ = store.Close() }
		}
	}

	return media.Toolset{
		FFmpeg:  client,
		Prober:  prober,
		Workers: cfg.Processing.Workers,
	}, cleanup, nil
}
