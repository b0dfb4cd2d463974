package models

import (
	"fmt"
	"strings"
)

// OrderStatus is the closed set of values an order's status field may hold.
type OrderStatus string

const (
	StatusCart       OrderStatus = "CART"
	StatusWaiting    OrderStatus = "WAITING"
	StatusInProgress OrderStatus = "INPROGRESS"
	StatusReady      OrderStatus = "READY"
	StatusFinished   OrderStatus = "FINISHED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

var allStatuses = []OrderStatus{
	StatusCart,
	StatusWaiting,
	StatusInProgress,
	StatusReady,
	StatusFinished,
	StatusCancelled,
}

// transitions lists the forward moves of the lifecycle. CANCELLED is reachable
// from every non-terminal state.
var transitions = map[OrderStatus][]OrderStatus{
	StatusCart:       {StatusWaiting, StatusCancelled},
	StatusWaiting:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusReady, StatusCancelled},
	StatusReady:      {StatusFinished, StatusCancelled},
}

// ParseOrderStatus accepts any casing and surrounding whitespace.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

func (s OrderStatus) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is accepted from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransition reports whether the lifecycle allows moving from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
