package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/drogafarm/internal/catalog"
	"github.com/jask/drogafarm/internal/store"
)

var errBackend = errors.New("backend down")

// countingKV wraps a memory store, counts calls and can fail on demand.
type countingKV struct {
	mem *store.Memory

	mu                          sync.Mutex
	gets, sets, removes         int
	failGet, failSet, failClear bool
}

func newCountingKV() *countingKV {
	return &countingKV{mem: store.NewMemory()}
}

func (k *countingKV) Get(ctx context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	k.gets++
	fail := k.failGet
	k.mu.Unlock()
	if fail {
		return "", false, errBackend
	}
	return k.mem.Get(ctx, key)
}

func (k *countingKV) Set(ctx context.Context, key, value string) error {
	k.mu.Lock()
	k.sets++
	fail := k.failSet
	k.mu.Unlock()
	if fail {
		return errBackend
	}
	return k.mem.Set(ctx, key, value)
}

func (k *countingKV) Remove(ctx context.Context, keys ...string) error {
	k.mu.Lock()
	k.removes++
	fail := k.failClear
	k.mu.Unlock()
	if fail {
		return errBackend
	}
	return k.mem.Remove(ctx, keys...)
}

func (k *countingKV) calls() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.gets + k.sets + k.removes
}

func newTestMachine(t *testing.T, opts ...Option) (*Machine, *countingKV) {
	t.Helper()
	kv := newCountingKV()
	return New(catalog.Default(), NewStore(kv), opts...), kv
}

func price(t *testing.T, itemID int) decimal.Decimal {
	t.Helper()
	it, ok := catalog.Default().Item(itemID)
	require.True(t, ok)
	return it.Price
}

func mustLogin(t *testing.T, m *Machine) {
	t.Helper()
	_, err := m.AttemptLogin(context.Background(), "a@b.com", "secret1", false)
	require.NoError(t, err)
}

// toCheckout logs in if needed, adds item 1 and opens checkout.
func toCheckout(t *testing.T, m *Machine) {
	t.Helper()
	ctx := context.Background()
	if m.State().Screen == Anonymous {
		mustLogin(t, m)
	}
	_, err := m.AddToCart(ctx, 1)
	require.NoError(t, err)
	_, err = m.BeginCheckout(ctx)
	require.NoError(t, err)
}

// toRating drives a fresh order all the way to the rating screen.
func toRating(t *testing.T, m *Machine) Result {
	t.Helper()
	toCheckout(t, m)
	ctx := context.Background()
	_, err := m.SelectPayment(ctx, 2)
	require.NoError(t, err)
	res, err := m.ConfirmOrder(ctx)
	require.NoError(t, err)
	return res
}

// mutableCatalog lets a test change prices after items were added.
type mutableCatalog struct {
	items map[int]catalog.Item
}

func (c *mutableCatalog) Item(id int) (catalog.Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

func (c *mutableCatalog) Vendor(id int) (catalog.Vendor, bool) { return catalog.Vendor{}, false }

func (c *mutableCatalog) PaymentMethod(id int) (catalog.PaymentMethod, bool) {
	return catalog.PaymentMethod{ID: id, Name: "PIX"}, id == 1
}
