package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gocrop/config"
	"github.com/samuelfneumann/gocrop/network"
	"github.com/samuelfneumann/gocrop/utils/tensorutils"
	"github.com/spf13/cobra"
	"gorgonia.org/tensor"
)

// layerFlags are the flags describing the layer to use
type layerFlags struct {
	rank     int
	cropping string
	position string
}

func (f *layerFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.rank, "rank", "r", 2, "Number of spatial axes "+
		"to crop (1, 2 or 3)")
	cmd.Flags().StringVarP(&f.cropping, "cropping", "c", "", "Comma "+
		"separated before,after pairs, one pair per spatial axis")
	cmd.Flags().StringVarP(&f.position, "channel-position", "p",
		string(network.DefaultPosition), "Channel position: channels_first, "+
			"channels_last or default")
}

// layer constructs the layer described by the flags
func (f *layerFlags) layer() (network.Layer, error) {
	crop, err := parseCropping(f.cropping)
	if err != nil {
		return nil, err
	}

	position, err := network.ParseChannelPosition(f.position)
	if err != nil {
		return nil, err
	}

	layer, err := network.NewCropping(f.rank, crop, position)
	if err != nil {
		return nil, err
	}
	slog.Debug("constructed layer", "layer", layer)
	return layer, nil
}

// parseCropping parses a list of before,after pairs such as "1,1,2,2"
func parseCropping(s string) ([]network.Crop, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '(' || r == ')'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Wrapf(network.ErrConfig, "parsecropping: odd "+
			"number of crop amounts in %q", s)
	}

	crop := make([]network.Crop, len(fields)/2)
	for i := range crop {
		before, err := strconv.Atoi(fields[2*i])
		if err != nil {
			return nil, errors.Wrapf(network.ErrConfig, "parsecropping: %v", err)
		}
		after, err := strconv.Atoi(fields[2*i+1])
		if err != nil {
			return nil, errors.Wrapf(network.ErrConfig, "parsecropping: %v", err)
		}
		crop[i] = network.Crop{Before: before, After: after}
	}
	return crop, nil
}

// axisRole names the role of an axis of the layer's input
func axisRole(layer network.Layer, axis int) string {
	if axis == 0 {
		return "batch"
	}

	type channeled interface{ ChannelAxis() int }
	if c, ok := layer.(channeled); ok && c.ChannelAxis() == axis {
		return "channel"
	}
	return "spatial"
}

// extent formats a single extent of a Shape
func extent(s network.Shape, axis int) string {
	if !s.IsKnown(axis) {
		return "?"
	}
	return strconv.Itoa(s[axis])
}

func renderShapes(w io.Writer, layer network.Layer, in, out network.Shape) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"AXIS", "ROLE", "INPUT", "OUTPUT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for axis := range in {
		table.Append([]string{
			strconv.Itoa(axis),
			axisRole(layer, axis),
			extent(in, axis),
			extent(out, axis),
		})
	}
	table.Render()
}

func shapeHandler(f *layerFlags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		layer, err := f.layer()
		if err != nil {
			return err
		}

		in, err := network.ParseShape(args[0])
		if err != nil {
			return err
		}

		out, err := layer.OutputShape(in)
		if err != nil {
			return err
		}

		renderShapes(cmd.OutOrStdout(), layer, in, out)
		return nil
	}
}

func applyHandler(f *layerFlags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		layer, err := f.layer()
		if err != nil {
			return err
		}

		in, err := network.ParseShape(args[0])
		if err != nil {
			return err
		}
		concrete, err := in.TensorShape()
		if err != nil {
			return err
		}

		x := tensorutils.Sequential(tensor.Float64, concrete...)
		slog.Debug("cropping sequential tensor", "shape", in)

		out, err := layer.Apply(x)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "shape: %v\n%v\n",
			network.ShapeOf(out.Shape()), out)
		return nil
	}
}

func configHandler(f *layerFlags, from *string) func(*cobra.Command,
	[]string) error {
	return func(cmd *cobra.Command, args []string) error {
		var layer network.Layer
		var err error

		if *from != "" {
			var data []byte
			if data, err = os.ReadFile(*from); err != nil {
				return err
			}
			layer, err = network.Unmarshal(data)
		} else {
			layer, err = f.layer()
		}
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(layer, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	}
}

// NewCLI returns the root command of the crop CLI
func NewCLI() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "crop",
		Short:         "Inspect cropping layers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: level})))
			slog.Debug("configuration", "env", config.AsMap())
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show debug output")

	var shapeFlags layerFlags
	shapeCmd := &cobra.Command{
		Use:   "shape SHAPE",
		Short: "Print the output shape of a layer, e.g. crop shape -c 1,1,2,2 ?,10,10,3",
		Args:  cobra.ExactArgs(1),
		RunE:  shapeHandler(&shapeFlags),
	}
	shapeFlags.register(shapeCmd)

	var applyFlags layerFlags
	applyCmd := &cobra.Command{
		Use:   "apply SHAPE",
		Short: "Crop a tensor of sequential values of the given shape",
		Args:  cobra.ExactArgs(1),
		RunE:  applyHandler(&applyFlags),
	}
	applyFlags.register(applyCmd)

	var configFlags layerFlags
	var from string
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the JSON configuration of a layer",
		Args:  cobra.NoArgs,
		RunE:  configHandler(&configFlags, &from),
	}
	configFlags.register(configCmd)
	configCmd.Flags().StringVarP(&from, "from", "f", "", "Read the layer "+
		"configuration from a JSON file")

	rootCmd.AddCommand(shapeCmd, applyCmd, configCmd)

	return rootCmd
}
