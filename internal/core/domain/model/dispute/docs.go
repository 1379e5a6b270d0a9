// Package dispute models a complaint raised against an order.
//
// Opening a dispute moves the order to DISPUTE_OPEN; resolving it moves the
// order to COMPLETED. An order has at most one open dispute at a time, which
// storage enforces with a partial unique index.
package dispute
