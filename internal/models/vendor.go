package models

import "time"

// Vendor is a merchant known to one owner. Names are not unique: two vendors
// of the same owner may carry near-identical names.
type Vendor struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Owner     string    `json:"owner" yaml:"owner"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// VendorMapping links a raw merchant string, verbatim, to a vendor of the same
// owner. There is at most one mapping per (Owner, RawKey).
type VendorMapping struct {
	Owner     string    `json:"owner" yaml:"owner"`
	RawKey    string    `json:"raw_key" yaml:"raw_key"`
	VendorID  string    `json:"vendor_id" yaml:"vendor_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Resolution is the outcome of resolving one raw merchant name.
// An empty VendorID with a non-empty VendorName is a degraded result: the
// vendor could not be stored and the transaction is imported without a link.
type Resolution struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	IsNew      bool   `json:"is_new"`
}

// Degraded reports whether the resolution carries a name but no vendor link.
func (r Resolution) Degraded() bool {
	return r.VendorID == "" && r.VendorName != ""
}

// FindVendor returns the vendor with the given id from a snapshot.
func FindVendor(vendors []Vendor, id string) (Vendor, bool) {
	for _, v := range vendors {
		if v.ID == id {
			return v, true
		}
	}
	return Vendor{}, false
}
