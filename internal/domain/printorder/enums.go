package printorder

// PageSize represents the paper size requested for an order
type PageSize string

const (
	PageSizeA4 PageSize = "A4" // 210mm x 297mm
	PageSizeA3 PageSize = "A3" // 297mm x 420mm
)

// IsValid checks if the PageSize is a valid value
func (p PageSize) IsValid() bool {
	switch p {
	case PageSizeA4, PageSizeA3:
		return true
	}
	return false
}

// String returns the string representation of PageSize
func (p PageSize) String() string {
	return string(p)
}

// AllPageSizes returns all valid PageSize values
func AllPageSizes() []PageSize {
	return []PageSize{PageSizeA4, PageSizeA3}
}

// PrintMode represents the color mode requested for an order
type PrintMode string

const (
	PrintModeBlackWhite PrintMode = "black_white"
	PrintModeColor      PrintMode = "color"
)

// IsValid checks if the PrintMode is a valid value
func (m PrintMode) IsValid() bool {
	switch m {
	case PrintModeBlackWhite, PrintModeColor:
		return true
	}
	return false
}

// String returns the string representation of PrintMode
func (m PrintMode) String() string {
	return string(m)
}

// AllPrintModes returns all valid PrintMode values
func AllPrintModes() []PrintMode {
	return []PrintMode{PrintModeBlackWhite, PrintModeColor}
}

// OrderStatus represents the lifecycle status of a print order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPrinting  OrderStatus = "printing"
	OrderStatusCompleted OrderStatus = "completed"
)

// IsValid checks if the OrderStatus is a valid value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPrinting, OrderStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this is a terminal status (no further transitions)
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted
}

func (s OrderStatus) rank() int {
	switch s {
	case OrderStatusPending:
		return 0
	case OrderStatusPrinting:
		return 1
	case OrderStatusCompleted:
		return 2
	}
	return -1
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are strictly forward; an order never moves back in its lifecycle.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	return target.rank() > s.rank()
}

// AllOrderStatuses returns all valid OrderStatus values
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusPrinting, OrderStatusCompleted}
}
