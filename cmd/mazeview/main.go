package main

import (
	"context"
	"os"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gdamore/tcell/v2"
	"github.com/segmentio/encoding/json"

	"maze3d/internal/config"
	"maze3d/internal/mazeview"
	"maze3d/internal/world"
)

func main() {
	conf := config.Default()
	conf.Width, conf.Height = 40, 20
	conf.ChunkSize = 10

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Shows a generated maze from above in the terminal.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal

	if err := conf.Validate(); err != nil {
		logs.Fatal(err)
	}

	if err := run(ctx, conf); err != nil {
		logs.Fatal(err)
	}
}

func run(ctx context.Context, conf config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.New("creating terminal screen failed").Wrap(err)
	}
	if err := screen.Init(); err != nil {
		return errors.New("initializing terminal screen failed").Wrap(err)
	}
	defer screen.Fini()

	// generation logs would scribble over the screen
	logs.SetLevel(logs.ParseLevel("error"))

	scene, err := world.New(conf.WorldOptions())
	if err != nil {
		return err
	}
	return mazeview.New(screen, scene).Run(ctx)
}
