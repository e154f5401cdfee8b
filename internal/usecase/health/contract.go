package health

import "context"

// ClusterProbe checks search cluster availability.
type ClusterProbe interface {
	ClusterAvailable(ctx context.Context) bool
}
