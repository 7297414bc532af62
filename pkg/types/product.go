package types

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// ID identifies an entity within one table of the browser database.
type ID = uint32

// ProductKey addresses a product by exactly one of its two identities:
// the numeric content-path id, or the vendor-assigned universal id (UPID).
// Exactly one field is set; the zero value is not a valid key. The struct
// is comparable, so it serves directly as a map key.
type ProductKey struct {
	ID   ID     `json:"id,omitempty"`
	UPID string `json:"upid,omitempty"`
}

// ByID returns the numeric-id form of a product key.
func ByID(id ID) ProductKey { return ProductKey{ID: id} }

// ByUPID returns the universal-id form of a product key.
func ByUPID(upid string) ProductKey { return ProductKey{UPID: upid} }

func (k ProductKey) String() string {
	if k.UPID != "" {
		return fmt.Sprintf("upid:%s", k.UPID)
	}
	return fmt.Sprintf("id:%d", k.ID)
}

// Product is one logical instrument/library. Products sharing a UPID across
// several content paths collapse into a single record reachable by any of
// its keys.
type Product struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Vendor     string `json:"vendor"`
	UPID       string `json:"-"`
	ContentDir string `json:"-"`

	// Presets holds the ids of every preset belonging to this product.
	Presets *roaring.Bitmap `json:"-"`
}
