package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/segmentio/encoding/json"

	"maze3d/internal/admin"
	"maze3d/internal/audio"
	"maze3d/internal/config"
	"maze3d/internal/game"
	"maze3d/internal/input"
	"maze3d/internal/metrics"
	"maze3d/internal/profiling"
	"maze3d/internal/world"
)

// The maze3d version number. Set at build.
var version = "v0.1.0"

func init() {
	// glfw and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	conf := config.Default()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Explores a randomly generated 3D maze.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := conf.Validate(); err != nil {
		logs.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg, version)

	if conf.MetricsAddr != "" {
		go admin.ListenAndServe(ctx, &http.Server{
			Addr:    conf.MetricsAddr,
			Handler: admin.NewHandler(reg),
		})
	}

	if err := run(ctx, conf, m); err != nil {
		logs.Fatal(err)
	}
}

func run(ctx context.Context, conf config.Config, m *metrics.Metrics) error {
	if err := glfw.Init(); err != nil {
		return errors.New("initializing glfw failed").Wrap(err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(conf)
	if err != nil {
		return err
	}
	defer window.Destroy()

	scene, err := world.New(conf.WorldOptions())
	if err != nil {
		return err
	}

	session := game.NewSession(scene,
		input.NewManager(),
		config.NewRenderSettings(conf.FOV),
		profiling.NewRecorder(),
	)
	session.Metrics = m
	session.ObserveScene()

	if conf.Sound {
		sounds := audio.New()
		if err := sounds.Init(); err != nil {
			logs.Warn(errors.New("sound disabled").Wrap(err))
		} else {
			defer sounds.Close()
			session.Bumper = sounds
		}
	}

	app, err := game.NewApp(window, session, conf.FontPath, conf.FPSLimit)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			window.SetShouldClose(true)
			glfw.PostEmptyEvent()
		case <-done:
		}
	}()

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("width", conf.Width).
		WithTag("height", conf.Height).
		WithTag("maze_id", scene.ID()).
		Info("starting maze3d")

	return app.Run()
}
