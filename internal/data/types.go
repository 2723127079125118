package data

// Class labels found in the second-to-last column of each recording.
const (
    NonRequest = 0
    BothHands  = 1
    LeftHand   = 2
    RightHand  = 3
)

var classNames = map[int]string{
    NonRequest: "Non-request",
    BothHands:  "Both hands",
    LeftHand:   "Left hand",
    RightHand:  "Right hand",
}

// ClassName maps a label to its human readable name, "Unknown" for anything
// outside the four known classes.
func ClassName(label int) string {
    if n, ok := classNames[label]; ok {
        return n
    }
    return "Unknown"
}

// KnownClass reports whether label is one of the four request classes.
func KnownClass(label int) bool {
    _, ok := classNames[label]
    return ok
}

// Source records which rows of a Dataset came from which file.
type Source struct {
    File  string `json:"file"`
    Start int    `json:"start"`
    End   int    `json:"end"`
}

func (s Source) Rows() int { return s.End - s.Start }

// Dataset is every recording stacked row-wise in file order.
type Dataset struct {
    Features [][]float64 `json:"-"`
    Labels   []int       `json:"-"`
    Columns  []string    `json:"columns"`
    Sources  []Source    `json:"sources"`
}

func (d *Dataset) Len() int { return len(d.Labels) }

func (d *Dataset) NumFeatures() int {
    if len(d.Features) == 0 {
        return len(d.Columns)
    }
    return len(d.Features[0])
}
