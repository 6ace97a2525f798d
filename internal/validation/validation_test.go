package validation

import "testing"

func TestLoginRequest(t *testing.T) {
	v := New()

	ok := LoginRequest{Email: "a@b.com", Password: "secret1"}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}

	bad := LoginRequest{Email: "not-an-email", Password: "secret1"}
	err := v.Struct(bad)
	if err == nil {
		t.Fatal("malformed email accepted")
	}
	fields := validationErrorsToMap(err)
	if fields["LoginRequest.Email"] != "email" {
		t.Fatalf("unexpected field map: %v", fields)
	}
}

func TestRegisterRequest(t *testing.T) {
	v := New()

	ok := RegisterRequest{Name: "Jane", Email: "jane@x.com", Password: "secret1"}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("valid register rejected: %v", err)
	}

	short := RegisterRequest{Name: "Jane", Email: "jane@x.com", Password: "12345"}
	if err := v.Struct(short); err == nil {
		t.Fatal("short password accepted")
	}
	oneLetter := RegisterRequest{Name: "J", Email: "jane@x.com", Password: "secret1"}
	if err := v.Struct(oneLetter); err == nil {
		t.Fatal("one-letter name accepted")
	}
}

func TestAddCartItemRequest(t *testing.T) {
	v := New()

	// quantity is optional, zero means "default to one"
	if err := v.Struct(AddCartItemRequest{ProductID: "p-1"}); err != nil {
		t.Fatalf("omitted quantity rejected: %v", err)
	}
	if err := v.Struct(AddCartItemRequest{ProductID: "p-1", Quantity: 3}); err != nil {
		t.Fatalf("valid quantity rejected: %v", err)
	}
	if err := v.Struct(AddCartItemRequest{ProductID: "p-1", Quantity: -1}); err == nil {
		t.Fatal("negative quantity accepted")
	}
	if err := v.Struct(AddCartItemRequest{Quantity: 1}); err == nil {
		t.Fatal("missing product id accepted")
	}
}

func TestCheckoutRequest_BlankFieldsRejected(t *testing.T) {
	v := New()

	addr := ShippingAddress{FullName: "Jane Doe", Address: "1 Main St", City: "Lagos", State: "LA", Zip: "100001", Country: "NG"}
	if err := v.Struct(CheckoutRequest{ShippingAddress: addr, PaymentMethod: "card"}); err != nil {
		t.Fatalf("valid checkout rejected: %v", err)
	}

	// whitespace passes required but fails the struct-level check
	err := v.Struct(CheckoutRequest{ShippingAddress: addr, PaymentMethod: "   "})
	if err == nil {
		t.Fatal("blank payment method accepted")
	}
	fields := validationErrorsToMap(err)
	if fields["CheckoutRequest.PaymentMethod"] != "notblank" {
		t.Fatalf("unexpected field map: %v", fields)
	}

	blankName := addr
	blankName.FullName = " "
	if err := v.Struct(CheckoutRequest{ShippingAddress: blankName, PaymentMethod: "card"}); err == nil {
		t.Fatal("blank recipient name accepted")
	}
}

func TestUpdateStatusRequest(t *testing.T) {
	v := New()

	for _, st := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		if err := v.Struct(UpdateStatusRequest{Status: st}); err != nil {
			t.Fatalf("status %q rejected: %v", st, err)
		}
	}
	if err := v.Struct(UpdateStatusRequest{Status: "teleported"}); err == nil {
		t.Fatal("unknown status accepted")
	}
	if err := v.Struct(UpdateStatusRequest{}); err == nil {
		t.Fatal("missing status accepted")
	}
}

func TestNavigateRequest(t *testing.T) {
	v := New()

	if err := v.Struct(NavigateRequest{Page: "product", ProductID: "p-1"}); err != nil {
		t.Fatalf("valid navigation rejected: %v", err)
	}
	if err := v.Struct(NavigateRequest{Page: "settings"}); err == nil {
		t.Fatal("unknown page accepted")
	}
}
