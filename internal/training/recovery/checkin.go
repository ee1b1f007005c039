package recovery

import "time"

// Checkin is a daily subjective readiness entry, each field on a 1-5
// scale.
type Checkin struct {
	ID         int       `json:"id"`
	Date       time.Time `json:"date"`
	Sleep      int       `json:"sleep"`
	Soreness   int       `json:"soreness"`
	Energy     int       `json:"energy"`
	Motivation int       `json:"motivation"`
}

// Score is the derived readiness score, the average of the four inputs.
func (c Checkin) Score() float64 {
	return float64(c.Sleep+c.Soreness+c.Energy+c.Motivation) / 4
}

func (c Checkin) Valid() bool {
	for _, v := range []int{c.Sleep, c.Soreness, c.Energy, c.Motivation} {
		if v < 1 || v > 5 {
			return false
		}
	}
	return true
}
