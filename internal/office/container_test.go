package office

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewContainer(t *testing.T) {
	ctx := context.Background()

	docker, err := newContainer(ctx, &mockExecutor{}, binDocker, "")
	if err != nil {
		t.Fatalf("newContainer(docker): %v", err)
	}
	if docker.Name() != binDocker {
		t.Errorf("Name() = %q, want %q", docker.Name(), binDocker)
	}
	if docker.image != defaultImage {
		t.Errorf("image = %q, want default", docker.image)
	}

	podman, err := newContainer(ctx, &mockExecutor{}, binPodman, "example.org/office:1")
	if err != nil {
		t.Fatalf("newContainer(podman): %v", err)
	}
	if podman.image != "example.org/office:1" {
		t.Errorf("image = %q, want explicit image kept", podman.image)
	}

	if _, err := newContainer(ctx, &mockExecutor{}, "nerdctl", ""); err == nil {
		t.Fatal("expected error for unsupported runtime")
	}
}

func TestNewContainerImageMissing(t *testing.T) {
	mock := &mockExecutor{silent: map[string]error{
		"docker image inspect": errors.New("no such image"),
	}}
	if _, err := newContainer(context.Background(), mock, binDocker, ""); err == nil {
		t.Fatal("expected error when the image is absent")
	}
}

func TestContainerImageCheckCommands(t *testing.T) {
	tests := []struct {
		bin  string
		want string
	}{
		{binDocker, "docker image inspect " + defaultImage},
		{binPodman, "podman image exists " + defaultImage},
	}
	for _, tt := range tests {
		t.Run(tt.bin, func(t *testing.T) {
			mock := &mockExecutor{}
			if _, err := newContainer(context.Background(), mock, tt.bin, ""); err != nil {
				t.Fatal(err)
			}
			last := strings.Join(mock.calls[len(mock.calls)-1], " ")
			if last != tt.want {
				t.Errorf("image check = %q, want %q", last, tt.want)
			}
		})
	}
}

func TestContainerConvert(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(srcDir, "report.docx")
	if err := os.WriteFile(src, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}

	mock := &mockExecutor{
		onRun: func(name string, args []string) {
			os.WriteFile(filepath.Join(outDir, "report.pdf"), []byte("%PDF-1.4"), 0o644)
		},
	}
	c, err := newContainer(context.Background(), mock, binDocker, "")
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Convert(context.Background(), src, outDir)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if want := filepath.Join(outDir, "report.pdf"); got != want {
		t.Errorf("Convert = %q, want %q", got, want)
	}

	joined := strings.Join(mock.calls[len(mock.calls)-1], " ")
	for _, want := range []string{
		"docker run --rm",
		srcDir + ":/in:ro",
		outDir + ":/out",
		"--entrypoint soffice",
		defaultImage,
		"--convert-to pdf",
		"/in/report.docx",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("command %q missing %q", joined, want)
		}
	}
}

func TestContainerConvertNoOutput(t *testing.T) {
	src := filepath.Join(t.TempDir(), "report.docx")
	if err := os.WriteFile(src, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := newContainer(context.Background(), &mockExecutor{}, binPodman, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Convert(context.Background(), src, t.TempDir()); err == nil {
		t.Fatal("expected error when the container writes nothing")
	}
}

func TestDetect(t *testing.T) {
	ctx := context.Background()

	// Local install wins.
	b, err := detect(ctx, &mockExecutor{onPath: map[string]bool{"soffice": true, "docker": true}}, "")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if b.Name() != "soffice" {
		t.Errorf("Name() = %q, want soffice", b.Name())
	}

	// No local install: docker is next.
	b, err = detect(ctx, &mockExecutor{onPath: map[string]bool{"docker": true, "podman": true}}, "")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if b.Name() != binDocker {
		t.Errorf("Name() = %q, want %q", b.Name(), binDocker)
	}

	// Docker daemon down: podman takes over.
	mock := &mockExecutor{
		onPath: map[string]bool{"docker": true, "podman": true},
		silent: map[string]error{"docker info": errors.New("cannot connect")},
	}
	b, err = detect(ctx, mock, "")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if b.Name() != binPodman {
		t.Errorf("Name() = %q, want %q", b.Name(), binPodman)
	}

	// Nothing available.
	if _, err := detect(ctx, &mockExecutor{}, ""); err == nil {
		t.Fatal("expected error when no backend exists")
	}
}
