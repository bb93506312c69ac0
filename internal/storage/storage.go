package storage

import (
	"context"

	"github.com/slok/appbox/internal/model"
)

// Repository is the interface for container persistence. It is the source of
// truth tasks consult before touching a container.
type Repository interface {
	CreateContainer(ctx context.Context, c model.Container) error
	GetContainerByName(ctx context.Context, name string) (*model.Container, error)
	// ContainerExists is a pure query with no side effects.
	ContainerExists(ctx context.Context, name string) (bool, error)
	ListContainers(ctx context.Context) ([]model.Container, error)
	DeleteContainer(ctx context.Context, name string) error
}
