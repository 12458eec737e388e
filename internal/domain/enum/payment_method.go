package enum

// PaymentMethod identifies how a sale is settled. The string values are the
// keys persisted in clients.json.
type PaymentMethod string

const (
	PaymentVista         PaymentMethod = "vista"
	PaymentCredito       PaymentMethod = "credito"
	PaymentParcelado     PaymentMethod = "parcelado"
	PaymentDebito        PaymentMethod = "debito"
	PaymentPix           PaymentMethod = "pix"
	PaymentCartaoCredito PaymentMethod = "cartao_credito"
	PaymentCartaoDebito  PaymentMethod = "cartao_debito"
)

var displayNames = map[PaymentMethod]string{
	PaymentVista:         "À Vista",
	PaymentCredito:       "Crédito (Fiado)",
	PaymentParcelado:     "Parcelado",
	PaymentDebito:        "Débito",
	PaymentPix:           "PIX",
	PaymentCartaoCredito: "Cartão de Crédito",
	PaymentCartaoDebito:  "Cartão de Débito",
}

// AllPaymentMethods lists every accepted method in menu order.
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentVista,
		PaymentCredito,
		PaymentParcelado,
		PaymentDebito,
		PaymentPix,
		PaymentCartaoCredito,
		PaymentCartaoDebito,
	}
}

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	_, ok := displayNames[m]
	return ok
}

// Display returns the human-readable Portuguese label for the method.
func (m PaymentMethod) Display() string {
	if name, ok := displayNames[m]; ok {
		return name
	}
	return string(m)
}

// Immediate reports whether the method settles the full amount at checkout.
func (m PaymentMethod) Immediate() bool {
	switch m {
	case PaymentVista, PaymentDebito, PaymentPix, PaymentCartaoCredito, PaymentCartaoDebito:
		return true
	}
	return false
}

// UsesStoreCredit reports whether the method draws down the client's prepaid balance.
func (m PaymentMethod) UsesStoreCredit() bool {
	return m == PaymentCredito
}

// Deferred reports whether the method defers the full amount (installment plan).
func (m PaymentMethod) Deferred() bool {
	return m == PaymentParcelado
}
