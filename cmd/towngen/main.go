package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "towngen",
		Short: "Two-layer tile grid engine with direction-matched road networks",
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(placeCmd())
	rootCmd.AddCommand(networkCmd())
	rootCmd.AddCommand(repairCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(dumpCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate the project tile catalog without touching the map",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func generateCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Generate a small demo map: ground fill, road ring and spur, a few objects",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args[0], width, height)
		},
	}

	cmd.Flags().IntVar(&width, "width", 24, "map width in tiles")
	cmd.Flags().IntVar(&height, "height", 16, "map height in tiles")
	return cmd
}

func placeCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "place [project-path]",
		Short: "Place a road path between two points on the saved map",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPlace(args[0], from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "path start as x,y")
	cmd.Flags().StringVar(&to, "to", "", "path end as x,y")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func networkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network [project-path]",
		Short: "Check road network connectivity on the saved map",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runNetwork(args[0])
		},
	}
}

func repairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair [project-path]",
		Short: "Bridge disconnected road islands on the saved map",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRepair(args[0])
		},
	}
}

func renderCmd() *cobra.Command {
	var (
		out        string
		scale      int
		format     string
		background string
	)

	cmd := &cobra.Command{
		Use:   "render [project-path]",
		Short: "Render the saved map to an image using the project atlas",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRender(args[0], out, scale, format, background)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output image path (default <project>/map.<format>)")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer pixel scale")
	cmd.Flags().StringVar(&format, "format", "png", "output format: png, jpeg or gif")
	cmd.Flags().StringVar(&background, "background", "#000000", "background color as #rrggbb")
	return cmd
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [project-path]",
		Short: "Print the saved map as ASCII, one layer after the other",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [project-path]",
		Short: "Print derived statistics for the saved map",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runStats(args[0])
		},
	}
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [project-path]",
		Short: "Open the saved map in the interactive terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port, width, height int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local agent action server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServe(args[0], port, width, height)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().IntVar(&width, "width", 24, "width for a fresh map when none is saved")
	cmd.Flags().IntVar(&height, "height", 16, "height for a fresh map when none is saved")
	return cmd
}
