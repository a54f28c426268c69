package usecase

import (
	"context"

	"hotel-booking/pkg/remote"
)

// RemoteCaller is the outbound side of a service-to-service call.
// *remote.Client implements it.
type RemoteCaller interface {
	PostJSON(ctx context.Context, path string, body any) remote.Outcome
}
