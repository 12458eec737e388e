package enum

import "encoding/json"

// SaleStatus is the tagged state of a sale, derived from the stored
// paid/paid_amount/cancelled fields. It disambiguates the paid=true sentinel
// that historically meant both "fully paid" and "cancelled".
type SaleStatus int

const (
	SaleStatusUnpaid        SaleStatus = 0
	SaleStatusPartiallyPaid SaleStatus = 1
	SaleStatusPaid          SaleStatus = 2
	SaleStatusCancelled     SaleStatus = 3
)

func (s SaleStatus) String() string {
	names := [...]string{"Unpaid", "PartiallyPaid", "Paid", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unpaid"
	}
	return names[s]
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = SaleStatusUnpaid
	case "PartiallyPaid":
		*s = SaleStatusPartiallyPaid
	case "Paid":
		*s = SaleStatusPaid
	case "Cancelled":
		*s = SaleStatusCancelled
	}
	return nil
}
