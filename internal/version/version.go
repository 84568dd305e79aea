// ABOUTME: Version constants
// ABOUTME: Identifies the product in logs
package version

const (
	Version = "0.1.0"
	Product = "News Reader"
)
