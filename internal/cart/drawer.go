package cart

import (
	"context"
	"sync"
)

// Routes the drawer's checkout action can resolve to.
const (
	CheckoutRoute = "/checkout"
	LoginRoute    = "/login?next=%2Fcheckout"
)

// SessionChecker verifies that a user session exists before checkout
// navigation is allowed. The HTTP-backed implementation lives in the admin
// client package.
type SessionChecker interface {
	Check(ctx context.Context) error
}

// SessionCheckerFunc adapts a plain function to the SessionChecker interface.
type SessionCheckerFunc func(ctx context.Context) error

func (f SessionCheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// Drawer coordinates the cart presentation: a visibility flag, the highlight
// target for scroll-into-view, and the session-gated checkout navigation.
type Drawer struct {
	mu      sync.Mutex
	cart    *Container
	checker SessionChecker
	open    bool
}

func NewDrawer(cart *Container, checker SessionChecker) *Drawer {
	return &Drawer{cart: cart, checker: checker}
}

func (d *Drawer) Open() {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

func (d *Drawer) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

func (d *Drawer) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Items returns the rows to render. A closed drawer renders nothing at all,
// not a hidden list.
func (d *Drawer) Items() []Item {
	if !d.IsOpen() {
		return nil
	}
	return d.cart.Items()
}

// HighlightIndex reports which visible row should be scrolled into view,
// based on the cart's last-added marker.
func (d *Drawer) HighlightIndex() (int, bool) {
	if !d.IsOpen() {
		return 0, false
	}
	id, ok := d.cart.LastAdded()
	if !ok {
		return 0, false
	}
	for i, it := range d.cart.Items() {
		if it.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Checkout gates navigation into the checkout flow behind the session check.
// An empty cart stays put; a verified session routes to checkout and closes
// the drawer; a failed or errored check routes to login with the return path.
func (d *Drawer) Checkout(ctx context.Context) string {
	if d.cart.TotalItems() == 0 {
		return ""
	}
	if err := d.checker.Check(ctx); err != nil {
		return LoginRoute
	}
	d.Close()
	return CheckoutRoute
}
