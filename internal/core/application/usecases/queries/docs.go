// Package queries holds the read side: raw SQL through gorm returning read
// models shaped for the HTTP layer. Queries never write and never take row
// locks.
package queries
