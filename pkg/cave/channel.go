package cave

// Channel identifies one independent noise field used by the generator.
// Each channel places the seed in its own coordinate slot or at its own
// offset, so no two channels read the same samples.
type Channel int

const (
	ChannelPathX Channel = iota
	ChannelPathY
	ChannelRotation
	ChannelShape
	ChannelDepth
	ChannelLateralX
	ChannelLateralY

	numChannels
)

type channelDef struct {
	name string
	// offset is added to the seed before it is placed in a coordinate.
	offset float64
	coords func(a, b, s float64) (x, y, z float64)
}

var channels = [numChannels]channelDef{
	ChannelPathX: {
		name:   "path-x",
		coords: func(a, _, s float64) (float64, float64, float64) { return a, s, 11 },
	},
	ChannelPathY: {
		name:   "path-y",
		coords: func(a, _, s float64) (float64, float64, float64) { return a, 22, s },
	},
	ChannelRotation: {
		name:   "rotation",
		coords: func(a, _, s float64) (float64, float64, float64) { return a, s, 5 },
	},
	ChannelShape: {
		name:   "shape",
		coords: seedInZ,
	},
	ChannelDepth: {
		name:   "depth",
		offset: 777,
		coords: seedInZ,
	},
	ChannelLateralX: {
		name:   "lateral-x",
		offset: 888,
		coords: seedInZ,
	},
	ChannelLateralY: {
		name:   "lateral-y",
		offset: 999,
		coords: seedInZ,
	},
}

func seedInZ(a, b, s float64) (float64, float64, float64) { return a, b, s }

// String returns the channel name.
func (c Channel) String() string {
	if c < 0 || c >= numChannels {
		return "unknown"
	}
	return channels[c].name
}

// Sample reads the channel's field at (a, b) for the given seed.
// Single-coordinate channels ignore b.
func (c Channel) Sample(n Noise, seed int64, a, b float64) float64 {
	def := channels[c]
	x, y, z := def.coords(a, b, float64(seed)+def.offset)
	return n.Sample(x, y, z)
}
