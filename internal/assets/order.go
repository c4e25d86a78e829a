package assets

import (
	"fmt"
	"strings"
)

// Order is the policy used to arrange resolved images.
type Order string

const (
	// OrderSource keeps filesystem enumeration order.
	OrderSource Order = "source"
	// OrderAscending sorts by the numeric key in the file name, smallest first.
	OrderAscending Order = "asc"
	// OrderDescending sorts by the numeric key in the file name, largest first.
	OrderDescending Order = "desc"
)

// ParseOrder accepts the config spellings of an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return OrderAscending, nil
	case "desc", "descending":
		return OrderDescending, nil
	case "source", "none", "unordered":
		return OrderSource, nil
	default:
		return "", fmt.Errorf("assets: unknown order %q (want asc, desc or source)", s)
	}
}

func (o Order) String() string { return string(o) }
