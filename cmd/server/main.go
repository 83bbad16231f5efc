package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubewise/coordinator"
	"tubewise/server"
	"tubewise/shared/ai"
	"tubewise/shared/cache"
	"tubewise/shared/config"
	"tubewise/shared/logging"
	"tubewise/shared/monitoring"
	"tubewise/shared/scheduler"
	"tubewise/shared/scratch"
	"tubewise/transcript"
	"tubewise/transcript/youtube"
	"tubewise/visual"
	"tubewise/ytdlp"
)

func main() {
	logging.Init()
	log := logging.L()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Context that responds to signals, for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scratchDir, err := scratch.New(cfg.Scratch.Dir)
	if err != nil {
		log.WithError(err).Fatal("failed to create scratch directory")
	}

	runner := ytdlp.New(cfg.Tools.YtDlpPath)

	aiClient, err := ai.NewClient(ctx, &cfg.AI)
	if err != nil {
		log.WithError(err).Fatal("failed to create AI client")
	}

	var sources []transcript.Source
	if cfg.CaptionsEnabled() {
		captionsClient, err := youtube.NewClient(&cfg.Captions)
		if err != nil {
			log.WithError(err).Warn("official captions unavailable, relying on yt-dlp and transcription")
		} else {
			sources = append(sources, transcript.NewOfficialSource(captionsClient))
			log.Info("official captions client initialized")
		}
	}
	sources = append(sources,
		transcript.NewCaptionFileSource(runner, scratchDir),
		transcript.NewAudioSource(runner, transcript.NewWhisperCLI(cfg.Tools.WhisperPath, cfg.Tools.WhisperModel), scratchDir),
	)
	chain := transcript.NewChain(runner, sources...)

	opener := visual.NewFFmpeg(cfg.Tools.FFmpegPath, cfg.Tools.FFprobePath, cfg.Frames.JPEGQuality)
	frames := visual.NewExtractor(runner, runner, opener, scratchDir, cfg.Frames.IntervalSeconds, cfg.Frames.MaxFrames)

	artifactCache := cache.New()
	coord := coordinator.New(artifactCache, chain, frames, aiClient)
	monitor := monitoring.NewMonitor()

	janitor, err := scheduler.NewJanitor(scratchDir, cfg.Scratch.JanitorSchedule, time.Duration(cfg.Scratch.MaxAgeMinutes)*time.Minute)
	if err != nil {
		log.WithError(err).Fatal("failed to create scratch janitor")
	}
	janitor.Start()
	defer janitor.Stop()

	app := server.New(coord, artifactCache, monitor).App()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.WithField("address", cfg.Server.Address).Info("starting video analysis server")
	if err := app.Listen(cfg.Server.Address); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
