package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/drogafarm/internal/catalog"
)

func browsing() State {
	return signIn(Identity{Name: "a", Email: "a@b.com"}, false)
}

func lineSum(c Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

func TestCartTotalMatchesLinesUnderRandomEdits(t *testing.T) {
	cat := catalog.Default()
	rng := rand.New(rand.NewSource(7))
	s := browsing()

	for i := 0; i < 500; i++ {
		id := rng.Intn(3) + 1
		var err error
		if rng.Intn(3) == 0 {
			s, err = removeFromCart(s, cat, id)
		} else {
			s, err = addToCart(s, cat, id)
		}
		require.NoError(t, err)
		require.True(t, lineSum(s.Cart).Equal(s.Cart.Total()), "step %d", i)

		seen := map[int]bool{}
		for _, l := range s.Cart.Lines {
			require.False(t, seen[l.ItemID], "duplicate line for %d", l.ItemID)
			require.Positive(t, l.Quantity)
			seen[l.ItemID] = true
		}
	}
}

func TestAddThenRemoveRestoresTotal(t *testing.T) {
	cat := catalog.Default()
	s, err := addToCart(browsing(), cat, 2)
	require.NoError(t, err)
	s, err = addToCart(s, cat, 2)
	require.NoError(t, err)
	before := s.Cart.Total()

	s, err = addToCart(s, cat, 3)
	require.NoError(t, err)
	assert.False(t, before.Equal(s.Cart.Total()))
	s, err = removeFromCart(s, cat, 3)
	require.NoError(t, err)
	assert.True(t, before.Equal(s.Cart.Total()))
	assert.Equal(t, "31.8", s.Cart.Total().String())
}

func TestCartMergesByItem(t *testing.T) {
	cat := catalog.Default()
	s := browsing()
	for _, id := range []int{1, 3, 1, 1} {
		var err error
		s, err = addToCart(s, cat, id)
		require.NoError(t, err)
	}
	require.Len(t, s.Cart.Lines, 2)
	assert.Equal(t, 1, s.Cart.Lines[0].ItemID)
	assert.Equal(t, 3, s.Cart.Lines[0].Quantity)
	assert.Equal(t, 3, s.Cart.Lines[1].ItemID)
	assert.Equal(t, 4, s.Cart.Units())
	assert.Equal(t, "62.6", s.Cart.Total().String())

	l, ok := s.Cart.Line(3)
	require.True(t, ok)
	assert.Equal(t, "35.9", l.Subtotal().String())
	_, ok = s.Cart.Line(2)
	assert.False(t, ok)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	cat := catalog.Default()
	s, err := addToCart(browsing(), cat, 1)
	require.NoError(t, err)
	snapshot := s.clone()

	_, err = addToCart(s, cat, 1)
	require.NoError(t, err)
	_, err = removeFromCart(s, cat, 1)
	require.NoError(t, err)
	co, err := beginCheckout(s)
	require.NoError(t, err)
	_, err = selectPayment(co, cat, 1)
	require.NoError(t, err)

	assert.Equal(t, snapshot, s)
	assert.Nil(t, co.Payment)
}

func TestConfirmOrderPreconditions(t *testing.T) {
	cat := catalog.Default()
	s, err := addToCart(browsing(), cat, 1)
	require.NoError(t, err)
	s, err = beginCheckout(s)
	require.NoError(t, err)

	_, err = confirmOrder(s, "ID", time.Time{})
	require.ErrorIs(t, err, ErrPaymentMethodRequired)

	s, err = selectPayment(s, cat, 3)
	require.NoError(t, err)
	empty := s.clone()
	empty.Cart = Cart{}
	_, err = confirmOrder(empty, "ID", time.Time{})
	require.ErrorIs(t, err, ErrEmptyCart)

	done, err := confirmOrder(s, "ID", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, RatingOrder, done.Screen)
	assert.Equal(t, "Dinheiro", done.Order.Payment.Name)
	assert.Equal(t, s.Cart.Lines, done.Order.Lines)
	assert.True(t, done.Cart.IsEmpty())
	assert.Equal(t, CheckingOut, s.Screen)
}
