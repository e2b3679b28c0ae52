// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joycdecor/joycdecor/internal/console/rotation"
	"github.com/joycdecor/joycdecor/pkg/slice"
)

// terminalPlayer stands in for a video element by printing what it would do.
type terminalPlayer struct {
	label  string
	output io.Writer
}

func (player *terminalPlayer) Play(muted bool) error {
	state := "with sound"
	if muted {
		state = "muted"
	}
	fmt.Fprintf(player.output, "%s ▶ playing video (%s)\n", player.label, state)
	return nil
}

func (player *terminalPlayer) Pause() {
	fmt.Fprintf(player.output, "%s ⏸ paused\n", player.label)
}

// describe renders one snapshot as a status line.
func describe(label string, snapshot rotation.Snapshot) string {
	if snapshot.Media == nil {
		return fmt.Sprintf("%s (no media)", label)
	}

	var flags []string
	if snapshot.Playing {
		flags = append(flags, "playing")
	}
	if snapshot.AutoRotating {
		flags = append(flags, "auto")
	}
	if snapshot.Locked {
		flags = append(flags, "locked")
	}

	return fmt.Sprintf("%s %d/%d %-5s %s %s",
		label, snapshot.Index+1, snapshot.Total, snapshot.Media.Kind, snapshot.Media.URL,
		dimLabel.Sprint("["+strings.Join(flags, ",")+"]"),
	)
}

// rotationFlags are the timing overrides shared by view and gallery.
type rotationFlags struct {
	interval time.Duration
	quiet    time.Duration
	duration time.Duration
}

func (flags *rotationFlags) register(command *cobra.Command, duration time.Duration) {
	command.Flags().DurationVar(&flags.interval, "interval", 0, "Time per media (default 4s gallery, 5s detail)")
	command.Flags().DurationVar(&flags.quiet, "quiet", 0, "Pause after manual navigation before resuming (gallery)")
	command.Flags().DurationVar(&flags.duration, "duration", duration, "Stop after this long (0 runs until input ends)")
}

func (flags *rotationFlags) options(variant rotation.Variant) rotation.Options {
	return rotation.Options{Variant: variant, Interval: flags.interval, QuietPeriod: flags.quiet}
}

// # Detail View

const viewHelp = `Commands: n(ext)  p(rev)  <number>  t(oggle)  e(nded)  h(ide)  s(how)  q(uit)`

func (app *App) viewCommand() *cobra.Command {
	timing := &rotationFlags{}
	var variant string

	command := &cobra.Command{
		Use:   "view ID|SLUG",
		Short: "Rotate through an item's media in the terminal",
		Long: `Rotate through an item's media as the detail page does (videos first,
no auto-advance after manual navigation). Use --variant gallery for the card
behavior. Commands are read from standard input, one per line.

` + viewHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			item, err := app.api().Read(command.Context(), args[0])
			if err != nil {
				return err
			}

			chosen := rotation.Detail
			if variant == "gallery" {
				chosen = rotation.Gallery
			}

			output := &syncWriter{writer: app.Stdout}
			options := timing.options(chosen)
			options.OnChange = func(snapshot rotation.Snapshot) {
				fmt.Fprintln(output, describe(item.Title, snapshot))
			}

			player := &terminalPlayer{label: item.Title, output: output}
			rotator := rotation.New(item.Timeline(chosen.Ordering()), player, options)
			defer rotator.Close()

			fmt.Fprintln(output, dimLabel.Sprint(viewHelp))
			rotator.Start()
			rotator.SetVisible(true)

			return app.runInteractive(command.Context(), timing.duration, func(line string) bool {
				return app.dispatch(rotator, output, line)
			})
		},
	}

	timing.register(command, 0)
	command.Flags().StringVar(&variant, "variant", "detail", "Rotation behavior: detail or gallery")
	return command
}

// dispatch applies one input command and reports false when the user quits.
func (app *App) dispatch(rotator *rotation.Rotator, output io.Writer, line string) bool {
	switch strings.ToLower(line) {
	case "":
	case "q", "quit":
		return false
	case "n", "next":
		rotator.Navigate(rotation.Next)
	case "p", "prev":
		rotator.Navigate(rotation.Prev)
	case "t", "toggle":
		if err := rotator.ToggleVideoPlayback(); err != nil {
			fmt.Fprintf(output, "playback refused: %v\n", err)
		}
	case "e", "ended":
		rotator.OnVideoEnded()
	case "h", "hide":
		rotator.SetVisible(false)
	case "s", "show":
		rotator.SetVisible(true)
	default:
		position, err := strconv.Atoi(line)
		if err != nil || !rotator.Select(position-1) {
			fmt.Fprintln(output, viewHelp)
		}
	}
	return true
}

// runInteractive feeds input lines to handle until it returns false, input
// ends, the duration elapses or the context is cancelled.
func (app *App) runInteractive(context context.Context, duration time.Duration, handle func(string) bool) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, ok := app.nextLine()
			if !ok {
				return
			}
			select {
			case lines <- line:
			case <-context.Done():
				return
			}
		}
	}()

	var deadline <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				if duration <= 0 {
					return nil
				}
				lines = nil
				continue
			}
			if !handle(line) {
				return nil
			}
		case <-deadline:
			return nil
		case <-context.Done():
			return nil
		}
	}
}

// # Gallery

func (app *App) galleryCommand() *cobra.Command {
	timing := &rotationFlags{}
	var category string

	command := &cobra.Command{
		Use:   "gallery",
		Short: "Rotate every gallery card at once",
		Long: `Mount one rotating card per item, images first, and print each change.
Runs for --duration or until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			items, err := app.api().List(command.Context())
			if err != nil {
				return err
			}

			output := &syncWriter{writer: app.Stdout}
			cards := slice.Filter(items, inCategory(category))
			titles := make(map[string]string, len(cards))
			for _, item := range cards {
				titles[item.ID] = item.Title
			}

			registry := rotation.NewRegistry(timing.options(rotation.Gallery))
			registry.OnItemChange = func(itemID string, snapshot rotation.Snapshot) {
				fmt.Fprintln(output, describe(titles[itemID], snapshot))
			}
			defer registry.Close()

			for _, item := range cards {
				registry.Mount(item, &terminalPlayer{label: item.Title, output: output})
			}
			fmt.Fprintf(output, "Rotating %d card(s)\n", len(cards))

			<-app.wait(command.Context(), timing.duration)
			return nil
		},
	}

	timing.register(command, 20*time.Second)
	command.Flags().StringVar(&category, "category", "", "Only items in this category")
	return command
}

// wait closes its channel after duration, or on cancellation when duration is 0.
func (app *App) wait(context context.Context, duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if duration <= 0 {
			<-context.Done()
			return
		}
		select {
		case <-time.After(duration):
		case <-context.Done():
		}
	}()
	return done
}
