package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"stitch/internal/manifest"
)

func newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "plan <manifest>",
		Short:       "Show what a manifest will compose without running any tools",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			interactive := false
			if f, ok := cmd.OutOrStdout().(*os.File); ok {
				interactive = isatty.IsTerminal(f.Fd())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Output: %s\n", m.Output)
			printVideoPlan(out, m.Video, interactive)
			printAudioPlan(out, m.Audio, interactive)
			printSubtitlePlan(out, m.Subtitle, interactive)
			return nil
		},
	}
}

func printVideoPlan(out io.Writer, section *manifest.VideoSection, interactive bool) {
	if section == nil {
		return
	}
	rows := make([][]string, 0, len(section.Clips))
	for _, clip := range section.Clips {
		// Load already validated the policies; parsing here only resolves
		// the empty-string defaults.
		extension, _ := manifest.ParseExtensionPolicy(clip.Extension)
		shrink, _ := manifest.ParseShrinkPolicy(clip.Shrink)
		rows = append(rows, []string{
			clip.UID,
			strconv.Itoa(clip.Layer),
			clip.Span[0] + " - " + clip.Span[1],
			extension.String() + "/" + shrink.String(),
			clip.Path,
		})
	}
	fmt.Fprintf(out, "\nVideo (%dx%d @ %d fps, %s):\n",
		section.Meta.Width, section.Meta.Height, section.Meta.FPS, section.Meta.Bitrate)
	fmt.Fprintln(out, renderTable(
		[]string{"UID", "Layer", "Span", "Policies", "Source"}, rows, interactive))
}

func printAudioPlan(out io.Writer, section *manifest.AudioSection, interactive bool) {
	if section == nil {
		return
	}
	rows := make([][]string, 0, len(section.Clips))
	for _, clip := range section.Clips {
		volume := "1"
		if clip.Volume != nil {
			volume = strconv.FormatFloat(*clip.Volume, 'f', -1, 64)
		}
		rows = append(rows, []string{
			clip.UID,
			strconv.Itoa(clip.Channel),
			clip.Span[0] + " - " + clip.Span[1],
			volume,
			yesNo(clip.Loop),
			clip.Path,
		})
	}
	fmt.Fprintln(out, "\nAudio:")
	fmt.Fprintln(out, renderTable(
		[]string{"UID", "Channel", "Span", "Volume", "Loop", "Source"}, rows, interactive))
}

func printSubtitlePlan(out io.Writer, section *manifest.SubtitleSection, interactive bool) {
	if section == nil {
		return
	}
	rows := make([][]string, 0, len(section.Clips))
	for _, clip := range section.Clips {
		styled := "default"
		if clip.Style != nil {
			styled = "custom"
		}
		rows = append(rows, []string{
			clip.UID,
			clip.Span[0] + " - " + clip.Span[1],
			styled,
			clip.Text,
		})
	}
	fmt.Fprintln(out, "\nSubtitles:")
	fmt.Fprintln(out, renderTable(
		[]string{"UID", "Span", "Style", "Text"}, rows, interactive))
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
