package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
)

// DockerClient is the interface for the Docker operations that we use.
// This allows us to mock the Docker client for testing.
type DockerClient interface {
	ImagePull(ctx context.Context, refStr string, options image.PullOptions) (io.ReadCloser, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerExecCreate(ctx context.Context, containerID string, options container.ExecOptions) (container.ExecCreateResponse, error)
	ContainerExecAttach(ctx context.Context, execID string, options container.ExecAttachOptions) (types.HijackedResponse, error)
	ContainerExecInspect(ctx context.Context, execID string) (container.ExecInspect, error)
}

// DriverConfig is the configuration for the Docker driver.
type DriverConfig struct {
	Client DockerClient
	Logger log.Logger
}

func (c *DriverConfig) defaults() error {
	if c.Client == nil {
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			return fmt.Errorf("could not create Docker client: %w", err)
		}
		c.Client = cli
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "driver.Docker"})
	return nil
}

// Driver is the Docker implementation of driver.Driver. Each application
// container is backed by a long-lived Docker container.
type Driver struct {
	client DockerClient
	logger log.Logger
}

// NewDriver creates a new Docker driver.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Driver{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// dockerName maps a container name to its backing Docker container name.
func dockerName(containerName string) string {
	return fmt.Sprintf("appbox-%s", strings.ToLower(containerName))
}

// Create pulls the base image, creates and starts the backing container and
// installs the configured packages.
func (d *Driver) Create(ctx context.Context, cfg model.ContainerConfig) error {
	d.logger.Infof("Pulling image %s", cfg.Image)
	pullResp, err := d.client.ImagePull(ctx, cfg.Image, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("could not pull image %s: %w", cfg.Image, err)
	}
	// Consume the pull response to ensure it completes.
	_, _ = io.Copy(io.Discard, pullResp)
	pullResp.Close()

	name := dockerName(cfg.Name)
	d.logger.Infof("Creating container %s", name)
	resp, err := d.client.ContainerCreate(ctx, &container.Config{
		Image: cfg.Image,
		// Keep the container alive, all work happens through exec.
		Cmd: []string{"sleep", "infinity"},
		Labels: map[string]string{
			"appbox.container": cfg.Name,
		},
	}, &container.HostConfig{}, &network.NetworkingConfig{}, nil, name)
	if err != nil {
		return fmt.Errorf("could not create container %s: %w", name, err)
	}

	if err := d.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("could not start container %s: %w", name, err)
	}

	if len(cfg.Packages) > 0 {
		if err := d.InstallPackages(ctx, cfg.Name, cfg.Packages); err != nil {
			return fmt.Errorf("could not install initial packages: %w", err)
		}
	}

	return nil
}

// Destroy stops and removes the backing container.
func (d *Driver) Destroy(ctx context.Context, containerName string) error {
	name := dockerName(containerName)

	timeout := 10
	if err := d.client.ContainerStop(ctx, name, container.StopOptions{Timeout: &timeout}); err != nil {
		d.logger.Warningf("Could not stop container %s, removing anyway: %s", name, err)
	}

	if err := d.client.ContainerRemove(ctx, name, container.RemoveOptions{Force: true}); err != nil {
		return fmt.Errorf("could not remove container %s: %w", name, err)
	}

	return nil
}

// ListAppIDs enumerates the application ids installed in the container by
// scanning the desktop entries of the root filesystem.
func (d *Driver) ListAppIDs(ctx context.Context, containerName string) ([]string, error) {
	out, err := d.exec(ctx, containerName, []string{"sh", "-c", "ls -1 /usr/share/applications 2>/dev/null || true"})
	if err != nil {
		return nil, fmt.Errorf("could not list desktop entries: %w", err)
	}

	appIDs := []string{}
	for _, line := range strings.Split(out, "\n") {
		entry := strings.TrimSpace(line)
		if !strings.HasSuffix(entry, ".desktop") {
			continue
		}
		app := strings.TrimSuffix(entry, ".desktop")
		appIDs = append(appIDs, fmt.Sprintf("%s_%s_0.0", containerName, app))
	}
	sort.Strings(appIDs)

	return appIDs, nil
}

// InstallPackages installs the given packages in the container.
func (d *Driver) InstallPackages(ctx context.Context, containerName string, packages []string) error {
	cmd := append([]string{"apt-get", "install", "-y", "--no-install-recommends"}, packages...)
	if _, err := d.exec(ctx, containerName, cmd); err != nil {
		return fmt.Errorf("could not install packages %v: %w", packages, err)
	}
	return nil
}

// RemovePackages removes the given packages from the container.
func (d *Driver) RemovePackages(ctx context.Context, containerName string, packages []string) error {
	cmd := append([]string{"apt-get", "remove", "-y"}, packages...)
	if _, err := d.exec(ctx, containerName, cmd); err != nil {
		return fmt.Errorf("could not remove packages %v: %w", packages, err)
	}
	return nil
}

// Update updates the packages installed in the container.
func (d *Driver) Update(ctx context.Context, containerName string) error {
	if _, err := d.exec(ctx, containerName, []string{"sh", "-c", "apt-get update && apt-get upgrade -y"}); err != nil {
		return fmt.Errorf("could not update container: %w", err)
	}
	return nil
}

// exec runs a command inside the backing container and returns its stdout.
func (d *Driver) exec(ctx context.Context, containerName string, cmd []string) (string, error) {
	name := dockerName(containerName)

	execResp, err := d.client.ContainerExecCreate(ctx, name, container.ExecOptions{
		Cmd:          cmd,
		Env:          []string{"DEBIAN_FRONTEND=noninteractive"},
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", fmt.Errorf("could not create exec in %s: %w", name, err)
	}

	attachResp, err := d.client.ContainerExecAttach(ctx, execResp.ID, container.ExecAttachOptions{})
	if err != nil {
		return "", fmt.Errorf("could not attach exec in %s: %w", name, err)
	}
	defer attachResp.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, attachResp.Reader); err != nil {
		return "", fmt.Errorf("could not read exec output: %w", err)
	}

	inspect, err := d.client.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return "", fmt.Errorf("could not inspect exec: %w", err)
	}
	if inspect.ExitCode != 0 {
		return "", fmt.Errorf("command %v failed with exit code %d: %s", cmd, inspect.ExitCode, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

var _ driver.Driver = &Driver{}
