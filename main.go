package main

import (
	"log/slog"
	"os"

	"github.com/samuelfneumann/gocrop/network"
	"github.com/samuelfneumann/gocrop/utils/tensorutils"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Crops an encoder feature map so that it can be concatenated with the
// smaller decoder feature map of a U-Net style skip connection.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	g := G.NewGraph()

	// Feature maps in (batch, rows, cols, channels) layout
	encoded := G.NewTensor(g, tensor.Float64, 4,
		G.WithShape(1, 12, 12, 2),
		G.WithName("encoded"),
		G.WithValue(tensorutils.Sequential(tensor.Float64, 1, 12, 12, 2)),
	)
	decoded := G.NewTensor(g, tensor.Float64, 4,
		G.WithShape(1, 8, 8, 3),
		G.WithName("decoded"),
		G.WithInit(G.Ones()),
	)

	crop, err := network.NewCropping2D(
		[]network.Crop{{Before: 2, After: 2}, {Before: 2, After: 2}},
		network.ChannelsLast,
	)
	if err != nil {
		logger.Error("could not create layer", "error", err)
		os.Exit(1)
	}

	cropped, err := crop.Fwd(encoded)
	if err != nil {
		logger.Error("could not crop encoder features", "error", err)
		os.Exit(1)
	}
	skip := G.Must(G.Concat(3, cropped, decoded))

	vm := G.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		logger.Error("could not run graph", "error", err)
		os.Exit(1)
	}

	logger.Info("skip connection", "layer", crop,
		"encoded", network.ShapeOf(encoded.Shape()),
		"cropped", network.ShapeOf(cropped.Shape()),
		"concatenated", network.ShapeOf(skip.Value().Shape()))
}
