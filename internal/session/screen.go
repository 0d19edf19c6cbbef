package session

// Screen is the tag of the screen the user is on.
type Screen string

const (
	Anonymous   Screen = "anonymous"
	Registering Screen = "registering"
	Browsing    Screen = "browsing"
	CheckingOut Screen = "checking_out"
	RatingOrder Screen = "rating_order"
)

// Screens lists every screen in flow order.
func Screens() []Screen {
	return []Screen{Anonymous, Registering, Browsing, CheckingOut, RatingOrder}
}

// Valid reports whether s is one of the defined screens.
func (s Screen) Valid() bool {
	switch s {
	case Anonymous, Registering, Browsing, CheckingOut, RatingOrder:
		return true
	}
	return false
}

// String representation (for logging)
func (s Screen) String() string {
	return string(s)
}
