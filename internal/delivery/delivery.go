// Package delivery defines the contract every transport implementation exposes
// to the application entrypoint.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
