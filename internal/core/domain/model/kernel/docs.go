// Package kernel holds value objects shared by every marketplace aggregate:
// UUID identifiers and Money amounts.
package kernel
