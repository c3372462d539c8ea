package models

// Payment channels
const (
	ChannelOnline  = "online"
	ChannelInStore = "in store"
	ChannelOther   = "other"
)

// Location is where a transaction took place. Every field is nullable.
type Location struct {
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Region      *string  `json:"region"`
	PostalCode  *string  `json:"postal_code"`
	Country     *string  `json:"country"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	StoreNumber *string  `json:"store_number"`
}

// PaymentMeta carries counterparty details for transfers and ACH/wire
// payments. Parties are free text; every field is nullable.
type PaymentMeta struct {
	ByOrderOf        *string `json:"by_order_of"`
	Payee            *string `json:"payee"`
	Payer            *string `json:"payer"`
	PaymentMethod    *string `json:"payment_method"`
	PaymentProcessor *string `json:"payment_processor"`
	PPDID            *string `json:"ppd_id"`
	Reason           *string `json:"reason"`
	ReferenceNumber  *string `json:"reference_number"`
}

// Transaction is a single posted or pending transaction.
// Amount is signed: positive is money in (deposit, refund), negative is
// money out (payment, purchase, fee).
type Transaction struct {
	TransactionID   string      `json:"transaction_id"`
	AccountID       string      `json:"account_id"`
	Amount          float64     `json:"amount"`
	IsoCurrencyCode string      `json:"iso_currency_code"`
	Date            string      `json:"date"`
	AuthorizedDate  *string     `json:"authorized_date"`
	Name            string      `json:"name"`
	MerchantName    string      `json:"merchant_name"`
	Category        []string    `json:"category"`
	Pending         bool        `json:"pending"`
	PaymentChannel  string      `json:"payment_channel"`
	Location        Location    `json:"location"`
	PaymentMeta     PaymentMeta `json:"payment_meta"`
}

// IsInflow returns true if this transaction adds money to the account
func (t *Transaction) IsInflow() bool {
	return t.Amount > 0
}

// Clone returns a deep copy that shares no slices or pointers with t
func (t Transaction) Clone() Transaction {
	c := t
	c.AuthorizedDate = cloneString(t.AuthorizedDate)
	if t.Category != nil {
		c.Category = append([]string(nil), t.Category...)
	}

	c.Location = Location{
		Address:     cloneString(t.Location.Address),
		City:        cloneString(t.Location.City),
		Region:      cloneString(t.Location.Region),
		PostalCode:  cloneString(t.Location.PostalCode),
		Country:     cloneString(t.Location.Country),
		Lat:         cloneFloat(t.Location.Lat),
		Lon:         cloneFloat(t.Location.Lon),
		StoreNumber: cloneString(t.Location.StoreNumber),
	}

	c.PaymentMeta = PaymentMeta{
		ByOrderOf:        cloneString(t.PaymentMeta.ByOrderOf),
		Payee:            cloneString(t.PaymentMeta.Payee),
		Payer:            cloneString(t.PaymentMeta.Payer),
		PaymentMethod:    cloneString(t.PaymentMeta.PaymentMethod),
		PaymentProcessor: cloneString(t.PaymentMeta.PaymentProcessor),
		PPDID:            cloneString(t.PaymentMeta.PPDID),
		Reason:           cloneString(t.PaymentMeta.Reason),
		ReferenceNumber:  cloneString(t.PaymentMeta.ReferenceNumber),
	}

	return c
}

// RemovedTransaction identifies a transaction deleted upstream
type RemovedTransaction struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
}

// String returns a pointer to s, for the nullable string fields
func String(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
