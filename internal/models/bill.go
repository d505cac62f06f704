package models

// BillRecord is one billed meter reading for a customer.
type BillRecord struct {
	// ID is assigned by the store on insert and never changes.
	ID int64

	// Name is the customer name, stored trimmed.
	Name string

	// Address is the customer address, stored trimmed.
	Address string

	// Units is the number of units consumed.
	Units int64

	// TotalBill is derived from Units by the tariff calculator.
	// It is recomputed on every create and update and never edited directly.
	TotalBill float64
}

// Draft holds the raw text of a record while it is being entered or edited.
// Units stays a string until the service parses it.
type Draft struct {
	Name    string
	Address string
	Units   string
}

// IsEmpty reports whether no field of the draft has been filled in.
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.Address == "" && d.Units == ""
}
