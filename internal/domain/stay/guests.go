package stay

import "errors"

var ErrInvalidGuestCount = errors.New("invalid guest count")

type Guests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func NewGuests(adults, children, infants int) (Guests, error) {
	g := Guests{Adults: adults, Children: children, Infants: infants}
	if err := g.Validate(); err != nil {
		return Guests{}, err
	}
	return g, nil
}

func (g Guests) Validate() error {
	if g.Adults < 1 || g.Children < 0 || g.Infants < 0 {
		return ErrInvalidGuestCount
	}
	return nil
}

// Occupancy excludes infants, who do not count against the guest cap.
func (g Guests) Occupancy() int {
	return g.Adults + g.Children
}
