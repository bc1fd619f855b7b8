// Package download fetches the videos a table references in bulk by
// streaming their URIs to a copy tool.
package download

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// DefaultColumn is the column holding video URIs.
const DefaultColumn = "video_uri"

// ReadURIs returns the distinct non-empty values of column in the CSV file
// at path, in first-seen order. A missing file is ErrNotFound and a missing
// column is ErrSchema.
func ReadURIs(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", types.ErrSchema, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", types.ErrNotFound, path, err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimPrefix(name, "\ufeff") == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: no %q column in %s", types.ErrSchema, column, path)
	}

	seen := make(map[string]bool)
	var uris []string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", types.ErrNotFound, path, err)
		}
		if col >= len(rec) {
			continue
		}
		uri := strings.TrimSpace(rec[col])
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true
		uris = append(uris, uri)
	}
	return uris, nil
}

// Downloader runs a copy tool that reads source URIs from stdin, one per
// line, with the destination directory as its last argument.
type Downloader struct {
	// Bin is the program to run; gsutil when empty.
	Bin string
	// Args precede the destination; "-m cp -I" when nil.
	Args []string
	// Output receives the tool's stdout and stderr.
	Output io.Writer
	Log    logrus.FieldLogger
}

// Run creates outDir and copies every URI into it. A non-zero exit of the
// tool is an error; with no URIs nothing is run.
func (d *Downloader) Run(ctx context.Context, uris []string, outDir string) error {
	if len(uris) == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	bin := d.Bin
	if bin == "" {
		bin = "gsutil"
	}
	args := d.Args
	if args == nil {
		args = []string{"-m", "cp", "-I"}
	}
	args = append(append([]string{}, args...), outDir)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(strings.Join(uris, "\n") + "\n")
	if d.Output != nil {
		cmd.Stdout = d.Output
		cmd.Stderr = d.Output
	}

	log := d.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log = log.WithFields(logrus.Fields{"count": len(uris), "dest": outDir})
	log.Info("download started")
	if err := cmd.Run(); err != nil {
		log.WithError(err).Error("download failed")
		return fmt.Errorf("run %s: %w", bin, err)
	}
	log.Info("download finished")
	return nil
}
