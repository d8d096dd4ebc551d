package storage

// Manifest is the on-disk record of a registered cave object.
type Manifest struct {
	Object   string     `json:"object"`
	Mesh     string     `json:"mesh"`
	File     string     `json:"file"`
	Format   string     `json:"format"`
	Seed     int64      `json:"seed"`
	Rings    int        `json:"rings"`
	Vertices int        `json:"vertices"`
	Faces    int        `json:"faces"`
	Skipped  int        `json:"skipped"`
	Min      [3]float64 `json:"min"`
	Max      [3]float64 `json:"max"`
}
