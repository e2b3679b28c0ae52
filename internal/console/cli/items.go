// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joycdecor/joycdecor/internal/console/lifecycle"
	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/pkg/slice"
)

func (app *App) itemsCommand() *cobra.Command {
	items := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "List, publish, edit and delete catalog items",
	}

	items.AddCommand(
		app.itemsListCommand(),
		app.itemsShowCommand(),
		app.itemsAddCommand(),
		app.itemsEditCommand(),
		app.itemsDeleteCommand(),
	)
	return items
}

// # Read

func (app *App) itemsListCommand() *cobra.Command {
	var category string

	command := &cobra.Command{
		Use:   "list",
		Short: "List every item, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			all, err := app.api().List(command.Context())
			if err != nil {
				return err
			}

			items := slice.Filter(all, inCategory(category))

			if app.jsonOutput {
				return app.printJSON(items)
			}

			table := newTable(app.Stdout, "ID", "TITLE", "CATEGORY", "IMAGES", "VIDEOS", "RATING", "CREATED")
			for _, item := range items {
				table.row(
					item.ID, item.Title, string(item.Category),
					strconv.Itoa(len(item.Images)), strconv.Itoa(len(item.Video)),
					strconv.FormatFloat(item.Rating, 'f', 1, 64),
					item.CreatedAt.Format("2006-01-02"),
				)
			}
			return table.flush()
		},
	}

	command.Flags().StringVar(&category, "category", "", "Only items in this category")
	return command
}

func (app *App) itemsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID|SLUG",
		Short: "Print an item as an editable YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			item, err := app.api().Read(command.Context(), args[0])
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return app.printJSON(item)
			}

			encoded, err := yaml.Marshal(fileFromItem(item))
			if err != nil {
				return fmt.Errorf("encode item: %w", err)
			}
			fmt.Fprintf(app.Stdout, "# %s (%s)\n%s", item.ID, item.Slug, encoded)
			return nil
		},
	}
}

// inCategory matches every item when category is empty.
func inCategory(category string) func(*catalog.Item) bool {
	return func(item *catalog.Item) bool {
		return category == "" || string(item.Category) == category
	}
}

// # Write

// itemFlags are the field overrides shared by add and edit.
type itemFlags struct {
	file        string
	title       string
	category    string
	images      []string
	videos      []string
	addImages   []string
	addVideos   []string
	remove      []string
	description string
	features    []string
	rating      float64
	reviews     int
}

func (flags *itemFlags) register(command *cobra.Command, editing bool) {
	set := command.Flags()
	set.StringVarP(&flags.file, "file", "f", "", "YAML item file (see \"items show\")")
	set.StringVar(&flags.title, "title", "", "Title")
	set.StringVar(&flags.category, "category", "", "Category, e.g. Wedding")
	set.StringArrayVar(&flags.images, "image", nil, "Image URL or local file (repeatable, replaces the list)")
	set.StringArrayVar(&flags.videos, "video", nil, "Video URL or local file (repeatable, replaces the list)")
	set.StringVar(&flags.description, "description", "", "Description")
	set.StringArrayVar(&flags.features, "feature", nil, "Feature bullet (repeatable, replaces the list)")
	set.Float64Var(&flags.rating, "rating", catalog.DefaultRating, "Rating from 0 to 5")
	set.IntVar(&flags.reviews, "reviews", 0, "Review count")

	if editing {
		set.StringArrayVar(&flags.addImages, "add-image", nil, "Append an image URL or local file")
		set.StringArrayVar(&flags.addVideos, "add-video", nil, "Append a video URL or local file")
		set.StringArrayVar(&flags.remove, "remove", nil, "Drop a media URL")
	}
}

// apply overlays the flags the user actually set onto file.
func (flags *itemFlags) apply(command *cobra.Command, file *itemFile) {
	changed := command.Flags().Changed

	if changed("title") {
		file.Title = flags.title
	}
	if changed("category") {
		file.Category = flags.category
	}
	if changed("image") {
		file.Images = flags.images
	}
	if changed("video") {
		file.Videos = flags.videos
	}
	if changed("description") {
		file.Description = flags.description
	}
	if changed("feature") {
		file.Features = flags.features
	}
	if changed("rating") {
		file.Rating = &flags.rating
	}
	if changed("reviews") {
		file.Reviews = &flags.reviews
	}

	file.Images = append(file.Images, flags.addImages...)
	file.Videos = append(file.Videos, flags.addVideos...)
	if len(flags.remove) > 0 {
		dropped := func(url string) bool { return slices.Contains(flags.remove, url) }
		file.Images = slices.DeleteFunc(file.Images, dropped)
		file.Videos = slices.DeleteFunc(file.Videos, dropped)
	}
}

func (app *App) itemsAddCommand() *cobra.Command {
	flags := &itemFlags{}

	command := &cobra.Command{
		Use:   "add",
		Short: "Publish a new item",
		Long: `Publish a new item. Local media files are uploaded first; a file that
fails is skipped and reported. Every media URL must be hosted by the asset
store, so external links are refused.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			file := itemFile{}
			if flags.file != "" {
				loaded, err := readItemFile(flags.file)
				if err != nil {
					return err
				}
				file = loaded
			}
			flags.apply(command, &file)

			controller, _, err := app.controller(command.Context())
			if err != nil {
				return err
			}
			defer controller.Close()

			file.Images = resolveMedia(command.Context(), controller, assetstore.KindImage, file.Images, app.warn)
			file.Videos = resolveMedia(command.Context(), controller, assetstore.KindVideo, file.Videos, app.warn)

			item, err := controller.Create(command.Context(), file.draft())
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return app.printJSON(item)
			}
			app.success("Created %q (%s)", item.Title, item.ID)
			fmt.Fprintf(app.Stdout, "Slug: %s\n", item.Slug)
			return nil
		},
	}

	flags.register(command, false)
	return command
}

func (app *App) itemsEditCommand() *cobra.Command {
	flags := &itemFlags{}

	command := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace an item and clean up media it no longer uses",
		Long: `Replace an item. Without -f the current record is the starting point
and only the given flags change. Media dropped by the edit is deleted from
the asset store in the background; a failed deletion is only reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			controller, api, err := app.controller(command.Context())
			if err != nil {
				return err
			}
			defer controller.Close()

			current, err := api.Read(command.Context(), args[0])
			if err != nil {
				return err
			}

			file := fileFromItem(current)
			if flags.file != "" {
				if file, err = readItemFile(flags.file); err != nil {
					return err
				}
			}
			flags.apply(command, &file)

			file.Images = resolveMedia(command.Context(), controller, assetstore.KindImage, file.Images, app.warn)
			file.Videos = resolveMedia(command.Context(), controller, assetstore.KindVideo, file.Videos, app.warn)

			draft := file.draft()
			orphaned := catalog.RemovedMedia(current, draft.Normalize())

			item, err := controller.Update(command.Context(), current.ID, draft)
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return app.printJSON(item)
			}
			app.success("Updated %q", item.Title)
			if len(orphaned) > 0 {
				fmt.Fprintf(app.Stdout, "Cleaning up %d unused media file(s)...\n", len(orphaned))
			}
			return nil
		},
	}

	flags.register(command, true)
	return command
}

func (app *App) itemsDeleteCommand() *cobra.Command {
	var assumeYes bool

	command := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item and its media",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			controller, api, err := app.controller(command.Context())
			if err != nil {
				return err
			}
			defer controller.Close()

			current, err := api.Read(command.Context(), args[0])
			if err != nil {
				return err
			}

			err = controller.Delete(command.Context(), current.ID, func(item catalog.Item) bool {
				if assumeYes {
					return true
				}
				return app.confirm(fmt.Sprintf("Delete %q and its %d media file(s)?", item.Title, len(item.MediaURLs())))
			})
			if errors.Is(err, lifecycle.ErrCancelled) {
				fmt.Fprintln(app.Stdout, "Cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			app.success("Deleted %q", current.Title)
			return nil
		},
	}

	command.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return command
}
