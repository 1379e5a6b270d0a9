// Package outbox models integration messages written in the same transaction
// as the state change they describe and relayed to the broker afterwards.
package outbox
