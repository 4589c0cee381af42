package office

import (
	"context"
	"fmt"
)

// Detect returns the first working backend: a local LibreOffice install,
// then a LibreOffice container under docker, then podman.
func Detect(ctx context.Context) (Backend, error) {
	return detect(ctx, defaultExec, "")
}

// DetectWithImage is Detect with an explicit container image for the
// container fallbacks.
func DetectWithImage(ctx context.Context, image string) (Backend, error) {
	return detect(ctx, defaultExec, image)
}

func detect(ctx context.Context, exec executor, image string) (Backend, error) {
	if s, err := newSoffice(exec); err == nil {
		return s, nil
	}

	for _, bin := range []string{binDocker, binPodman} {
		if !runtimeAvailable(ctx, exec, bin) {
			continue
		}
		c, err := newContainer(ctx, exec, bin, image)
		if err != nil {
			continue
		}
		return c, nil
	}

	return nil, fmt.Errorf(
		"no conversion backend available: LibreOffice not on PATH and neither %s nor %s can run the converter image",
		binDocker, binPodman)
}
