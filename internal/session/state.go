package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/drogafarm/internal/catalog"
)

// Identity is the signed-in user.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CartLine is one product in the cart. UnitPrice is captured when the item
// is first added and never re-read from the catalog.
type CartLine struct {
	ItemID    int             `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal is Quantity x UnitPrice.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per item id, in the order items were first added.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Total is the sum of every line subtotal.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Units is the number of units across all lines.
func (c Cart) Units() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Line returns the line for itemID.
func (c Cart) Line(itemID int) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return CartLine{}, false
}

func (c Cart) with(it catalog.Item) Cart {
	out := c.clone()
	for i := range out.Lines {
		if out.Lines[i].ItemID == it.ID {
			out.Lines[i].Quantity++
			return out
		}
	}
	out.Lines = append(out.Lines, CartLine{ItemID: it.ID, Name: it.Name, Quantity: 1, UnitPrice: it.Price})
	return out
}

func (c Cart) without(itemID int) Cart {
	out := Cart{}
	for _, l := range c.Lines {
		if l.ItemID != itemID {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

func (c Cart) clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	return Cart{Lines: append([]CartLine(nil), c.Lines...)}
}

// Order is the snapshot taken when checkout is confirmed.
type Order struct {
	ID       string                `json:"id"`
	Lines    []CartLine            `json:"lines"`
	Total    decimal.Decimal       `json:"total"`
	Payment  catalog.PaymentMethod `json:"payment"`
	Vendor   *catalog.Vendor       `json:"vendor,omitempty"`
	PlacedAt time.Time             `json:"placed_at"`
}

func (o Order) clone() Order {
	o.Lines = append([]CartLine(nil), o.Lines...)
	if o.Vendor != nil {
		v := *o.Vendor
		o.Vendor = &v
	}
	return o
}

// Feedback is the rating for one order. It is a draft until Submitted.
type Feedback struct {
	OrderID   string `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Submitted bool   `json:"submitted"`
}

// State is everything the session carries between screens.
type State struct {
	Screen     Screen                 `json:"screen"`
	Identity   *Identity              `json:"identity,omitempty"`
	RememberMe bool                   `json:"remember_me"`
	Cart       Cart                   `json:"cart"`
	Vendor     *catalog.Vendor        `json:"vendor,omitempty"`
	Payment    *catalog.PaymentMethod `json:"payment,omitempty"`
	Order      *Order                 `json:"order,omitempty"`
	Feedback   *Feedback              `json:"feedback,omitempty"`
	// History lists the orders confirmed since sign-in, oldest first.
	History []Order `json:"history,omitempty"`
}

func initialState() State {
	return State{Screen: Anonymous}
}

// clone returns a deep copy; callers never share memory with the machine.
func (s State) clone() State {
	out := s
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	out.Cart = s.Cart.clone()
	if s.Vendor != nil {
		v := *s.Vendor
		out.Vendor = &v
	}
	if s.Payment != nil {
		p := *s.Payment
		out.Payment = &p
	}
	if s.Order != nil {
		o := s.Order.clone()
		out.Order = &o
	}
	if s.Feedback != nil {
		f := *s.Feedback
		out.Feedback = &f
	}
	if s.History != nil {
		out.History = make([]Order, len(s.History))
		for i, o := range s.History {
			out.History[i] = o.clone()
		}
	}
	return out
}
