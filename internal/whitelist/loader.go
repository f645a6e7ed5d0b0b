package whitelist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-wikitext/internal/logging"
	"github.com/alnah/go-wikitext/internal/yamlutil"
)

// ErrNotAFile is returned when the configured path is a directory.
var ErrNotAFile = errors.New("whitelist path is not a regular file")

// Load resolves the whitelist for path. It never fails: an empty path yields
// the default whitelist, and any problem reading or decoding the file is
// reported to logger before falling back to the default. A nil logger
// reports to klog.
func Load(path string, logger logging.Logger) *Whitelist {
	if path == "" {
		return Default()
	}

	w, err := loadFile(path)
	if err == nil {
		return w
	}

	logger = logging.OrDefault(logger)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warningf("HTML whitelist file %q does not exist, using the default whitelist", path)
	} else {
		logger.Warningf("loading HTML whitelist file %q failed, using the default whitelist: %v", path, err)
	}
	return Default()
}

func loadFile(path string) (w *Whitelist, err error) {
	defer func() {
		if r := recover(); r != nil {
			w, err = nil, fmt.Errorf("unexpected error: %v", r)
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	f, err := os.Open(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := yamlutil.ReadLimited(f)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatForPath(path))
}
