package cart

import (
	"context"
	"errors"
	"testing"
)

func TestDrawerRendersNothingWhileClosed(t *testing.T) {
	c := NewContainer(NewMemoryStorage())
	c.Add(thinkpad(), 1)
	d := NewDrawer(c, SessionCheckerFunc(func(context.Context) error { return nil }))

	if items := d.Items(); items != nil {
		t.Fatalf("closed drawer must render nothing, got %#v", items)
	}
	if _, ok := d.HighlightIndex(); ok {
		t.Fatalf("closed drawer must not expose a highlight target")
	}

	d.Open()
	if !d.IsOpen() {
		t.Fatalf("drawer should be open")
	}
	if items := d.Items(); len(items) != 1 {
		t.Fatalf("open drawer renders the cart, got %#v", items)
	}
}

func TestDrawerHighlightIndexTracksLastAdded(t *testing.T) {
	c := NewContainer(NewMemoryStorage())
	d := NewDrawer(c, SessionCheckerFunc(func(context.Context) error { return nil }))
	d.Open()

	c.Add(thinkpad(), 1)
	c.Add(pixel(), 1)

	idx, ok := d.HighlightIndex()
	if !ok || idx != 1 {
		t.Fatalf("expected highlight on row 1 (pixel), got idx=%d ok=%v", idx, ok)
	}

	c.Add(thinkpad(), 1)
	idx, ok = d.HighlightIndex()
	if !ok || idx != 0 {
		t.Fatalf("expected highlight back on row 0, got idx=%d ok=%v", idx, ok)
	}
}

func TestCheckoutGating(t *testing.T) {
	okChecker := SessionCheckerFunc(func(context.Context) error { return nil })
	failChecker := SessionCheckerFunc(func(context.Context) error { return errors.New("401") })

	// empty cart stays put
	empty := NewDrawer(NewContainer(NewMemoryStorage()), okChecker)
	empty.Open()
	if dest := empty.Checkout(context.Background()); dest != "" {
		t.Fatalf("empty cart must not navigate, got %q", dest)
	}

	// verified session goes to checkout and closes the drawer
	c := NewContainer(NewMemoryStorage())
	c.Add(thinkpad(), 1)
	d := NewDrawer(c, okChecker)
	d.Open()
	if dest := d.Checkout(context.Background()); dest != CheckoutRoute {
		t.Fatalf("expected %q, got %q", CheckoutRoute, dest)
	}
	if d.IsOpen() {
		t.Fatalf("drawer must close on successful checkout navigation")
	}

	// failed session check routes to login with the return path
	c2 := NewContainer(NewMemoryStorage())
	c2.Add(thinkpad(), 1)
	d2 := NewDrawer(c2, failChecker)
	d2.Open()
	if dest := d2.Checkout(context.Background()); dest != LoginRoute {
		t.Fatalf("expected %q, got %q", LoginRoute, dest)
	}
}
