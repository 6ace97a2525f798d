package validation

import (
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New возвращает настроенный валидатор с зарегистрированной
// структурной проверкой для CheckoutRequest.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})
	return v
}

// checkoutStructValidation отсекает пробельные значения, которые проходят required
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	if strings.TrimSpace(req.PaymentMethod) == "" {
		sl.ReportError(req.PaymentMethod, "payment_method", "PaymentMethod", "notblank", "")
	}
	if strings.TrimSpace(req.ShippingAddress.FullName) == "" {
		sl.ReportError(req.ShippingAddress.FullName, "shipping_address.full_name", "FullName", "notblank", "")
	}
	if strings.TrimSpace(req.ShippingAddress.Address) == "" {
		sl.ReportError(req.ShippingAddress.Address, "shipping_address.address", "Address", "notblank", "")
	}
}
