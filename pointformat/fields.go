package pointformat

// Fields is the full semantic superset of columns any point format can
// carry. BuildRecord reads only the subset a given Format's FormatSpec.Columns
// names; ParseRecord populates only that same subset and leaves the rest at
// their zero value.
//
// Normalized channels (Intensity, color, NIR) are 0..1 floats; BuildRecord
// denormalizes them to their on-disk integer range and ParseRecord
// renormalizes on the way back.
type Fields struct {
	X, Y, Z float64 // real-valued position

	Intensity float64 // normalized 0..1

	ReturnNumber    uint8
	NumberOfReturns uint8
	ScanDirection   bool
	EdgeOfFlight    bool
	Synthetic       bool
	KeyPoint        bool
	Withheld        bool
	Overlap         bool // formats 6-10 only
	ScannerChannel  uint8 // formats 6-10 only, 0-3

	Classification uint8
	ScanAngle      float64 // degrees

	UserData      uint8
	PointSourceID uint16

	GPSTime float64

	ColorR, ColorG, ColorB float64 // normalized 0..1
	NIR                    float64 // normalized 0..1

	WaveformDescriptorIndex uint8
	WaveformOffset          uint64
	WaveformSize            uint32
	WaveformReturnLocation  float32
	WaveformX, WaveformY, WaveformZ float32
}
