package dto

type TourRequest struct {
	Tour []string `json:"tour"`
}

type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type LegResponse struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
}

type MeasureResponse struct {
	Cost  float64       `json:"cost"`
	Valid bool          `json:"valid"`
	Legs  []LegResponse `json:"legs,omitempty"`
}

type GreedyRequest struct {
	Prefix []string `json:"prefix"`
}

// TourResponse is a tour together with its measured cost.
type TourResponse struct {
	Tour []string `json:"tour"`
	Cost float64  `json:"cost"`
}

// PerturbRequest applies one operator. With I1 and I2 set the move is
// positional and only relocate, swap and reverse are accepted; otherwise
// positions are drawn from Seed (or the clock).
type PerturbRequest struct {
	Tour     []string `json:"tour"`
	Operator string   `json:"operator"`
	Seed     *int64   `json:"seed,omitempty"`
	I1       *int     `json:"i1,omitempty"`
	I2       *int     `json:"i2,omitempty"`
}

type SampleRequest struct {
	Tour     []string `json:"tour"`
	Operator string   `json:"operator"`
	Samples  int      `json:"samples"`
	Workers  int      `json:"workers"`
	Seed     *int64   `json:"seed,omitempty"`
}

type SampleResponse struct {
	BaseCost  float64  `json:"base_cost"`
	Samples   int      `json:"samples"`
	Improving int      `json:"improving"`
	Best      []string `json:"best"`
	BestCost  float64  `json:"best_cost"`
	Mean      float64  `json:"mean"`
	Median    float64  `json:"median"`
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	P90       float64  `json:"p90"`
	StdDev    float64  `json:"std_dev"`
}
