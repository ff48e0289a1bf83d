package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ReadyMarker is the file written inside a directory artifact once it is complete.
const ReadyMarker = ".ready"

const (
	archiveTimeLayout = "20060102T150405.000"
	stagingSuffix     = ".tmp"
)

var statConcurrency = 4 * runtime.NumCPU()

// IsPathReady reports whether the artifact at path is complete.
// A directory is complete once it holds the ready marker, a file as soon as it exists.
func IsPathReady(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	if !info.IsDir() {
		return true
	}

	_, err = os.Stat(filepath.Join(path, ReadyMarker))

	return err == nil
}

// MarkPathReady flags the artifact at path as complete.
func MarkPathReady(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "unable to mark %s as ready", path)
	}

	if !info.IsDir() {
		return nil
	}

	marker := filepath.Join(path, ReadyMarker)

	err = os.WriteFile(marker, []byte(time.Now().UTC().Format(time.RFC3339)+"\n"), 0o644) //nolint:gosec
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", marker)
	}

	return nil
}

// IsPathOutdated reports whether anything under inputs was modified after the artifact at path became ready.
// An artifact that cannot be compared with its inputs is outdated.
func IsPathOutdated(path string, inputs ...string) bool {
	outdated, err := PathOutdated(path, inputs...)
	if err != nil {
		return true
	}

	return outdated
}

// PathOutdated is IsPathOutdated with the reason of a failed comparison.
func PathOutdated(path string, inputs ...string) (bool, error) {
	readyAt, err := readyTime(path)
	if err != nil {
		return false, err
	}

	if len(inputs) == 0 {
		return false, nil
	}

	latest, err := latestModTime(inputs...)
	if err != nil {
		return false, err
	}

	return latest.After(readyAt), nil
}

// ArchivePath moves the artifact at path aside, suffixing it with the archive time.
// A missing artifact is not an error.
func ArchivePath(path string) error {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return errors.Wrapf(err, "unable to stat %s", path)
	}

	dest, err := archiveDest(path, time.Now().UTC())
	if err != nil {
		return err
	}

	err = os.Rename(path, dest)
	if err != nil {
		return errors.Wrapf(err, "unable to archive %s", path)
	}

	return nil
}

// archiveDest returns the first free archive path of path at the given time.
func archiveDest(path string, at time.Time) (string, error) {
	base := path + "_" + at.Format(archiveTimeLayout)
	dest := base

	for i := 1; ; i++ {
		_, err := os.Lstat(dest)
		if errors.Is(err, fs.ErrNotExist) {
			return dest, nil
		}

		if err != nil {
			return "", errors.Wrapf(err, "unable to stat %s", dest)
		}

		dest = fmt.Sprintf("%s_%d", base, i)
	}
}

// StagingPath is where the artifact at path is written before it is committed.
func StagingPath(path string) string {
	return path + stagingSuffix
}

// PrepareStaging clears what a failed attempt left at path or at its staging path,
// then creates the location the artifact is written into.
func PrepareStaging(path string, isDir bool) (string, error) {
	staging := StagingPath(path)

	err := os.RemoveAll(staging)
	if err != nil {
		return "", errors.Wrapf(err, "unable to clear %s", staging)
	}

	if !IsPathReady(path) {
		err = os.RemoveAll(path)
		if err != nil {
			return "", errors.Wrapf(err, "unable to clear %s", path)
		}
	}

	err = PreparePath(staging, isDir)
	if err != nil {
		return "", err
	}

	return staging, nil
}

// CommitStaging moves the staged artifact onto path, replacing what is there.
func CommitStaging(path string) error {
	staging := StagingPath(path)

	_, err := os.Stat(staging)
	if err != nil {
		return errors.Wrapf(err, "%s was not written", path)
	}

	err = os.RemoveAll(path)
	if err != nil {
		return errors.Wrapf(err, "unable to clear %s", path)
	}

	err = os.Rename(staging, path)
	if err != nil {
		return errors.Wrapf(err, "unable to commit %s", path)
	}

	return nil
}

// DiscardStaging removes the staged artifact of path.
func DiscardStaging(path string) error {
	staging := StagingPath(path)

	err := os.RemoveAll(staging)
	if err != nil {
		return errors.Wrapf(err, "unable to remove %s", staging)
	}

	return nil
}

// PreparePath creates the directory an artifact is written into.
// Directory artifacts get their own directory, file artifacts their parent.
func PreparePath(path string, isDir bool) error {
	dir := path
	if !isDir {
		dir = filepath.Dir(path)
	}

	err := os.MkdirAll(dir, 0o755) //nolint:gosec
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", dir)
	}

	return nil
}

// ListFiles returns the regular files under path, sorted, ready marker excluded.
func ListFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to stat %s", path)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	files := []string{}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.Type().IsRegular() && d.Name() != ReadyMarker {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list %s", path)
	}

	sort.Strings(files)

	return files, nil
}

func readyTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unable to stat %s", path)
	}

	if !info.IsDir() {
		return info.ModTime(), nil
	}

	marker, err := os.Stat(filepath.Join(path, ReadyMarker))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unable to stat ready marker of %s", path)
	}

	return marker.ModTime(), nil
}

// latestModTime walks every input and stats the entries concurrently.
func latestModTime(inputs ...string) (time.Time, error) {
	var (
		mu     sync.Mutex
		latest time.Time
	)

	errGrp := errgroup.Group{}
	errGrp.SetLimit(statConcurrency)

	for _, input := range inputs {
		err := filepath.WalkDir(input, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.Name() == ReadyMarker {
				return nil
			}

			errGrp.Go(func() error {
				info, err := d.Info()
				if err != nil {
					return errors.Wrapf(err, "unable to stat %s", p)
				}

				mu.Lock()
				defer mu.Unlock()

				if info.ModTime().After(latest) {
					latest = info.ModTime()
				}

				return nil
			})

			return nil
		})
		if err != nil {
			_ = errGrp.Wait()

			return time.Time{}, errors.Wrapf(err, "unable to walk %s", input)
		}
	}

	err := errGrp.Wait()
	if err != nil {
		return time.Time{}, err
	}

	return latest, nil
}
