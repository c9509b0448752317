package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/meshtx/animation"
	"github.com/matt-g-everett/meshtx/api"
	"github.com/matt-g-everett/meshtx/config"
	"github.com/matt-g-everett/meshtx/export"
	"github.com/matt-g-everett/meshtx/scene"
	"github.com/matt-g-everett/meshtx/stream"
	"github.com/spf13/cobra"
)

type app struct {
	Config   *config.Config
	Scene    *scene.Scene
	Timing   animation.Timing
	Client   mqtt.Client
	Streamer *stream.Streamer
}

func newApp(configPath string) (*app, error) {
	a := new(app)
	if err := a.readConfig(configPath); err != nil {
		return nil, err
	}

	opts, err := a.Config.SceneOptions()
	if err != nil {
		return nil, err
	}
	a.Scene, err = scene.New(opts)
	if err != nil {
		return nil, err
	}
	a.Timing, err = a.Config.Timing()
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) readConfig(configPath string) error {
	if configPath == "" {
		a.Config = config.Default()
		return nil
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.Config = c
	log.Printf("Loaded config from %s", configPath)
	return nil
}

// newPlayer starts the driver now, before any concurrent sampling.
func (a *app) newPlayer(vp scene.Viewport) *stream.Player {
	d := animation.NewDriver(a.Timing)
	d.Start(time.Now())
	return stream.NewPlayer(a.Scene, d, vp)
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
}

func (a *app) connect() error {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	return nil
}

func (a *app) runStream(ctx context.Context) error {
	if err := a.connect(); err != nil {
		return err
	}
	defer a.Client.Disconnect(250)

	player := a.newPlayer(a.Config.StreamViewport())
	a.Streamer = stream.NewStreamer(a.Client, a.Config.Mqtt.Topics.Stream, player, a.Config.Stream.FrameRate)
	return a.Streamer.Run(ctx)
}

func (a *app) runServe(ctx context.Context) error {
	vp := a.Config.RenderViewport()
	return api.NewApi(a.newPlayer(vp), vp, a.Config.HTTP.Static).Serve(ctx, a.Config.HTTP.Addr)
}

func createFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	var (
		configPath string
		width      int
		height     int
	)

	load := func() (*app, error) {
		a, err := newApp(configPath)
		if err != nil {
			return nil, err
		}
		if width > 0 {
			a.Config.Viewport.Width = width
		}
		if height > 0 {
			a.Config.Viewport.Height = height
		}
		return a, nil
	}

	rootCmd := &cobra.Command{
		Use:          "meshtx",
		Short:        "animated mesh gradient renderer",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "override viewport width")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "override viewport height")

	var (
		out string
		t   float64
	)
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a single frame to PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			f := a.Scene.Render(a.Config.RenderViewport(), t)
			if err := createFile(out, func(w *os.File) error { return export.PNG(w, f) }); err != nil {
				return err
			}
			log.Printf("Wrote %s at t=%v", out, t)
			return nil
		},
	}
	renderCmd.Flags().StringVar(&out, "out", "frame.png", "output file")
	renderCmd.Flags().Float64Var(&t, "t", 0, "blend parameter in [0, 1]")

	var (
		gifOut string
		frames int
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export one animation loop as a GIF",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			err = createFile(gifOut, func(w *os.File) error {
				return export.GIF(w, a.Scene, a.Timing, a.Config.RenderViewport(), frames)
			})
			if err != nil {
				return err
			}
			log.Printf("Wrote %d frames to %s", frames, gifOut)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&gifOut, "out", "mesh.gif", "output file")
	exportCmd.Flags().IntVar(&frames, "frames", 96, "frames per loop")

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "stream frames to an LED matrix over MQTT",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			return ignoreCancel(a.runStream(cmd.Context()))
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve a live preview over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			return ignoreCancel(a.runServe(cmd.Context()))
		},
	}

	rootCmd.AddCommand(renderCmd, exportCmd, streamCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func ignoreCancel(err error) error {
	if err == context.Canceled {
		return nil
	}
	return err
}
