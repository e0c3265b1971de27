package component

// DefaultCapacity is the classic 28-slot pack.
const DefaultCapacity = 28

// Inventory only tracks what the gathering loop needs: a capacity limit and
// the item ids deposited so far. Real item storage lives outside the kernel.
type Inventory struct {
	Capacity int
	Items    []string
}

func NewInventory(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inventory{Capacity: capacity, Items: make([]string, 0, capacity)}
}

func (inv *Inventory) HasSpace() bool { return len(inv.Items) < inv.Capacity }

// Add deposits one item. Returns false when full.
func (inv *Inventory) Add(itemID string) bool {
	if !inv.HasSpace() {
		return false
	}
	inv.Items = append(inv.Items, itemID)
	return true
}

// Count returns how many of itemID are held.
func (inv *Inventory) Count(itemID string) int {
	n := 0
	for _, it := range inv.Items {
		if it == itemID {
			n++
		}
	}
	return n
}
