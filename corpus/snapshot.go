package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"

	"github.com/binharvest/typelib/errors"
	"github.com/binharvest/typelib/types"
)

// SnapshotExt is the filename suffix LoadDir recognizes.
const SnapshotExt = ".json.gz"

const snapshotVersion = 1

type snapshot struct {
	Version int               `json:"v"`
	Catalog json.RawMessage   `json:"c"`
	Counts  map[string]uint64 `json:"f"`
}

func (x *Index) marshal() ([]byte, error) {
	cat, err := types.EncodeCatalog(x.cat)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snapshot{
		Version: snapshotVersion,
		Catalog: cat,
		Counts:  x.counts,
	})
}

// WriteSnapshot writes the index to w as gzipped JSON.
func (x *Index) WriteSnapshot(w io.Writer) error {
	data, err := x.marshal()
	if err != nil {
		return errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "encoding index")
	}
	gz := gzip.NewWriter(w)
	if _, err := gz.Write(data); err != nil {
		return errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "writing snapshot")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "flushing snapshot")
	}
	return nil
}

// ReadSnapshot reads a gzipped snapshot back into an index.
func ReadSnapshot(r io.Reader) (*Index, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindMalformed, err, "not a gzip stream")
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindMalformed, err, "reading snapshot")
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindMalformed, err, "parsing snapshot")
	}
	if snap.Version != snapshotVersion {
		return nil, errors.Malformed(errors.PhaseSnapshot, "unsupported snapshot version %d", snap.Version)
	}

	cat, err := types.DecodeCatalog(snap.Catalog)
	if err != nil {
		return nil, err
	}

	x := NewIndex()
	for _, name := range cat.Names() {
		count, ok := snap.Counts[name]
		if !ok {
			return nil, errors.Malformed(errors.PhaseSnapshot, "no count for entry %q", name)
		}
		n, err := cat.Get(name)
		if err != nil {
			return nil, err
		}
		x.AddN(name, n, count)
	}
	return x, nil
}

// Digest returns the sha256 hex digest of the index's canonical
// (uncompressed) snapshot encoding. Two indexes with identical contents
// produce the same digest.
func (x *Index) Digest() (string, error) {
	data, err := x.marshal()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// LoadDir reads and merges every snapshot in dir. Unreadable snapshots are
// skipped and reported together in the returned error; the index still
// holds everything that loaded cleanly.
func LoadDir(dir string) (*Index, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindNotFound, err, "reading snapshot directory")
	}

	x := NewIndex()
	var errs error
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), SnapshotExt) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		loaded, err := loadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := x.Merge(loaded); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return x, errs
}

func loadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindNotFound, err, path)
	}
	defer f.Close()
	return ReadSnapshot(f)
}
