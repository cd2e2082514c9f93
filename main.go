package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/plugin"
	"github.com/matt-g-everett/ledtween/stream"
	"github.com/matt-g-everett/ledtween/tween"
)

const (
	configKey  = "config"
	sceneKey   = "scene"
	samplesKey = "samples"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  configKey,
		Usage: "YAML config file",
		Value: "config.yaml",
	}
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	cmd := &cli.Command{
		Name:  "ledtween",
		Usage: "Stream tweened LED scenes over MQTT",
		Commands: []*cli.Command{
			{
				Name:   "stream",
				Usage:  "Play the configured scenes and publish frames",
				Flags:  []cli.Flag{configFlag()},
				Action: runStream,
			},
			{
				Name:  "inspect",
				Usage: "Print a table of a scene's values over one cycle",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     sceneKey,
						Usage:    "Scene name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  samplesKey,
						Usage: "Number of samples",
						Value: 11,
					},
				},
				Action: runInspect,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runStream(ctx context.Context, cmd *cli.Command) error {
	config, err := stream.LoadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}
	log.Printf("Config: %d scenes, %d pixels at %.0f fps", len(config.Scenes), config.Pixels, config.FrameRate)

	options := mqtt.NewClientOptions().
		AddBroker(config.Mqtt.URL).
		SetClientID("ledtween").
		SetUsername(config.Mqtt.Username).
		SetPassword(config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) { log.Println("Connected") })
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)

	streamer, err := stream.NewStreamer(config, client)
	if err != nil {
		return err
	}

	if config.StatusAddr != "" {
		go func() {
			if err := api.NewApi(streamer).Serve(config.StatusAddr); err != nil {
				log.Println(err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if err := streamer.Run(ctx); err != context.Canceled {
		return err
	}
	return nil
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	config, err := stream.LoadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}
	name := cmd.String(sceneKey)
	scene, ok := config.Scene(name)
	if !ok {
		return fmt.Errorf("unknown scene %q", name)
	}
	samples := int(cmd.Int(samplesKey))
	if samples < 2 {
		samples = 2
	}

	sched := tween.NewScheduler()
	plugin.InstallAll(sched)
	strip := stream.NewStrip(config.Pixels, nil)
	tw, err := stream.BuildScene(sched, strip, scene, false)
	if err != nil {
		return err
	}

	cycle := tw.Duration()
	if scene.Loop > 0 {
		cycle *= float64(scene.Loop + 1)
	}

	props := []string{"brightness", "colour", "hue", "position", "width", "offset", "twinkle"}
	header := table.Row{"ms", "label"}
	for _, p := range props {
		header = append(header, p)
	}

	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("%s (%s)", scene.Name, tw))
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(header)
	for i := 0; i < samples; i++ {
		pos := cycle * float64(i) / float64(samples-1)
		tw.SetPosition(pos, true, false)
		row := table.Row{fmt.Sprintf("%.0f", pos), tw.CurrentLabel()}
		for _, p := range props {
			v, _ := strip.Get(p)
			row = append(row, v)
		}
		tbl.AppendRow(row)
	}
	tbl.Render()

	for _, m := range tw.Mismatches() {
		log.Println(m)
	}
	return nil
}
