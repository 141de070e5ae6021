package network_test

import (
	"testing"

	"github.com/samuelfneumann/gocrop/network"
	"github.com/samuelfneumann/gocrop/utils/tensorutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// graphInput returns a node in a new graph holding a sequential tensor
func graphInput(shape ...int) (*G.ExprGraph, *G.Node) {
	g := G.NewGraph()
	x := G.NewTensor(g, tensor.Float64, len(shape),
		G.WithShape(shape...),
		G.WithName("x"),
		G.WithValue(tensorutils.Sequential(tensor.Float64, shape...)),
	)
	return g, x
}

func TestFwd(t *testing.T) {
	for _, test := range croppingCases {
		// Crops to a single step are covered by Apply
		if intsContain(test.want[1:], 1) {
			continue
		}

		t.Run(test.name, func(t *testing.T) {
			layer := newLayer(t, test.rank, test.crop, test.position)
			g, x := graphInput(test.input...)

			cropped, err := layer.Fwd(x)
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape(test.want), cropped.Shape())

			vm := G.NewTapeMachine(g)
			defer vm.Close()
			require.NoError(t, vm.RunAll())

			have := tensor.Materialize(cropped.Value().(tensor.Tensor))
			want, err := layer.Apply(tensorutils.Sequential(tensor.Float64,
				test.input...))
			require.NoError(t, err)

			assert.Equal(t, want.Shape(), have.Shape())
			assert.Equal(t, want.Data(), have.Data())
		})
	}
}

func TestFwdIdentity(t *testing.T) {
	layer, err := network.NewCropping2D([]network.Crop{{0, 0}, {0, 0}},
		network.ChannelsLast)
	require.NoError(t, err)

	_, x := graphInput(2, 4, 4, 3)
	cropped, err := layer.Fwd(x)
	require.NoError(t, err)
	assert.Same(t, x, cropped)
}

func TestFwdErrors(t *testing.T) {
	layer, err := network.NewCropping2D([]network.Crop{{2, 2}, {0, 0}},
		network.ChannelsLast)
	require.NoError(t, err)

	_, err = layer.Fwd(nil)
	assert.True(t, network.IsShapeError(err), "got error %v", err)

	_, x := graphInput(2, 4, 4, 3)
	_, err = layer.Fwd(x)
	assert.True(t, network.IsSliceError(err), "got error %v", err)

	_, bound := layer.Bound()
	assert.False(t, bound, "failed fwd should leave the layer unbound")

	other, err := network.NewCropping2D([]network.Crop{{2, 2}, {0, 0}},
		network.ChannelsLast)
	require.NoError(t, err)
	_, y := graphInput(2, 4, 3)
	_, err = other.Fwd(y)
	assert.True(t, network.IsShapeError(err), "got error %v", err)
}

func TestFwdBatchSizes(t *testing.T) {
	layer, err := network.NewCropping2D([]network.Crop{{1, 1}, {2, 2}},
		network.ChannelsLast)
	require.NoError(t, err)

	for _, batch := range []int{2, 3} {
		_, x := graphInput(batch, 10, 10, 3)
		cropped, err := layer.Fwd(x)
		require.NoError(t, err, "batch %d", batch)
		assert.Equal(t, tensor.Shape{batch, 8, 6, 3}, cropped.Shape())
	}

	bound, ok := layer.Bound()
	require.True(t, ok)
	assert.Equal(t, network.NewShape(network.Unknown, 10, 10, 3), bound)
}

// intsContain returns whether v is an element of s
func intsContain(s []int, v int) bool {
	for _, elem := range s {
		if elem == v {
			return true
		}
	}
	return false
}
