package types

import "github.com/RoaringBitmap/roaring"

// Preset is a single sound-preset record. Identity is the numeric id;
// ordering everywhere in the browser is natural order of the name.
type Preset struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	Vendor      string     `json:"vendor"`
	Comment     string     `json:"comment"`
	Product     ProductKey `json:"-"`
	ProductName string     `json:"product_name"`
	FileName    string     `json:"-"`

	// BankID is 0 when the preset is not assigned to any bank.
	BankID ID `json:"-"`

	Categories *roaring.Bitmap `json:"-"`
	Modes      *roaring.Bitmap `json:"-"`
}
