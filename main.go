package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"termview/logs"
	"termview/media"
	"termview/viewer"
)

func main() {
	var (
		sources   []string
		folders   []string
		grayscale bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:           "termview",
		Short:         "Display media as colored text in the terminal",
		Long:          "termview renders still images and video as colored text in a character terminal,\nwith interactive playback controls and an optional timeline/help overlay.",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range sources {
				info, err := os.Stat(p)
				if err != nil || info.IsDir() {
					return fmt.Errorf("%s is not a file", p)
				}
			}
			for _, p := range folders {
				info, err := os.Stat(p)
				if err != nil || !info.IsDir() {
					return fmt.Errorf("%s is not a directory", p)
				}
			}
			cmd.SilenceUsage = true
			if verbose {
				if err := logs.Setup("termview.log"); err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
			}
			return run(sources, folders, grayscale)
		},
	}

	cmd.Flags().StringArrayVarP(&sources, "source", "s", nil, "media file to display; repeatable, shown in sequence")
	cmd.Flags().StringArrayVarP(&folders, "folder", "f", nil, "folder whose files are shown in sequence; repeatable, not recursive")
	cmd.Flags().BoolVarP(&grayscale, "grayscale", "g", false, "display media in grayscale")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log diagnostics to termview.log")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sources, folders []string, grayscale bool) error {
	term, err := viewer.OpenTerminal()
	if err != nil {
		return err
	}
	defer term.Restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session, err := viewer.NewSession(viewer.Config{
		Paths:     sources,
		Folders:   folders,
		Grayscale: grayscale,
		Open:      media.Open,
		Input:     viewer.NewTTYInput(term.InputFd()),
		Out:       term.Out(),
		Size:      term.Size,
	})
	if err != nil {
		return err
	}

	term.MoveHome()
	return session.Run(ctx)
}
