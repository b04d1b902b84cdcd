package normcache

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

const (
	magic  = "keaton-cache v1"
	suffix = ".cache"
)

// FileStore keeps the entries of one thread source in a side file: a magic
// line, the blake3 digest of the JSON payload, then the xz compressed payload.
type FileStore struct {
	path string
}

// NewFileStore returns the store for the thread at source. With an empty
// cacheDir the side file sits next to the source; otherwise it lives in
// cacheDir under a name derived from the source path.
func NewFileStore(source, cacheDir string) *FileStore {
	if cacheDir == "" {
		return &FileStore{path: source + suffix}
	}
	sum := blake3.Sum256([]byte(source))
	name := hex.EncodeToString(sum[:8]) + suffix
	return &FileStore{path: filepath.Join(cacheDir, name)}
}

// Path returns the side file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the side file. Every way the file can be unusable is reported
// as ErrMiss.
func (s *FileStore) Load() ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrMiss, s.path)
		}
		return nil, fmt.Errorf("%w: %w", ErrMiss, err)
	}
	defer f.Close()

	entries, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMiss, s.path, err)
	}
	return entries, nil
}

// Save replaces the side file with entries.
func (s *FileStore) Save(entries []Entry) (err error) {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = encode(tmp, entries); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func encode(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	sum := blake3.Sum256(payload)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%s\n", magic, hex.EncodeToString(sum[:]))
	xw, err := xz.NewWriter(bw)
	if err != nil {
		return err
	}
	if _, err := xw.Write(payload); err != nil {
		return err
	}
	if err := xw.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

func decode(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil || strings.TrimSuffix(header, "\n") != magic {
		return nil, errors.New("bad header")
	}
	digestLine, err := br.ReadString('\n')
	if err != nil {
		return nil, errors.New("missing digest")
	}
	want, err := hex.DecodeString(strings.TrimSuffix(digestLine, "\n"))
	if err != nil {
		return nil, fmt.Errorf("bad digest: %w", err)
	}

	xr, err := xz.NewReader(br)
	if err != nil {
		return nil, err
	}
	payload, err := io.ReadAll(xr)
	if err != nil {
		return nil, err
	}
	got := blake3.Sum256(payload)
	if !bytes.Equal(got[:], want) {
		return nil, errors.New("digest mismatch")
	}

	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
