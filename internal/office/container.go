package office

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// defaultImage must ship a soffice entrypoint-compatible install.
	defaultImage = "docker.io/linuxserver/libreoffice:latest"
)

// Container exports documents through a LibreOffice container image. Docker
// and podman share the same CLI surface; they differ only in binary name
// and the subcommand used to check image existence.
type Container struct {
	bin           string
	image         string
	imageCheckCmd []string
	exec          executor
}

// NewContainer returns a backend using the given container runtime binary
// ("docker" or "podman") and image (empty selects the default). It verifies
// the image exists locally before returning.
func NewContainer(ctx context.Context, bin, image string) (*Container, error) {
	return newContainer(ctx, defaultExec, bin, image)
}

func newContainer(ctx context.Context, exec executor, bin, image string) (*Container, error) {
	if image == "" {
		image = defaultImage
	}
	c := &Container{bin: bin, image: image, exec: exec}
	switch bin {
	case binDocker:
		c.imageCheckCmd = []string{"image", "inspect"}
	case binPodman:
		c.imageCheckCmd = []string{"image", "exists"}
	default:
		return nil, fmt.Errorf("unsupported container runtime %q", bin)
	}
	if err := c.imageExists(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) Name() string { return c.bin }

func (c *Container) Close() error { return nil }

func (c *Container) imageExists(ctx context.Context) error {
	args := append(append([]string{}, c.imageCheckCmd...), c.image)
	if err := c.exec.RunSilent(ctx, c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", c.image, c.bin, err)
	}
	return nil
}

// Convert bind-mounts the document's directory read-only and outDir
// writable, then runs the containerized soffice export.
func (c *Container) Convert(ctx context.Context, path, outDir string) (string, error) {
	srcDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return "", err
	}
	dstDir, err := filepath.Abs(outDir)
	if err != nil {
		return "", err
	}

	args := []string{
		"run", "--rm",
		"-v", srcDir + ":/in:ro",
		"-v", dstDir + ":/out",
		"--entrypoint", "soffice",
		c.image,
		"--headless", "--norestore", "--convert-to", "pdf", "--outdir", "/out",
		"/in/" + filepath.Base(path),
	}
	out, err := c.exec.Run(ctx, c.bin, args...)
	if err != nil {
		return "", fmt.Errorf("%s run failed: %w (output: %s)", c.bin, err, string(out))
	}

	pdfPath := pdfSibling(path, outDir)
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("container produced no output for %s: %w", path, err)
	}
	return pdfPath, nil
}

// available reports whether the runtime binary exists on PATH and responds
// to an info command.
func runtimeAvailable(ctx context.Context, exec executor, bin string) bool {
	if _, err := exec.LookPath(bin); err != nil {
		return false
	}
	return exec.RunSilent(ctx, bin, "info") == nil
}
