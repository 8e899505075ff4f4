// Public domain.

package archive

import (
	"fmt"

	"github.com/soniakeys/mpcformat"
	"github.com/soniakeys/observation"
)

// ObservatoryCodes returns the MPC observatory code list as a parallax
// map, reading from the file at path.  If the file is missing or
// unreadable a fresh copy is fetched from the Minor Planet Center web
// site to that path and the read retried.
func ObservatoryCodes(path string) (observation.ParallaxMap, error) {
	m, readErr := mpcformat.ReadObscodeDatFile(path)
	if readErr == nil {
		return m, nil
	}
	// that didn't work.  try getting a fresh copy.
	if err := mpcformat.FetchObscodeDat(path); err != nil {
		return nil, fmt.Errorf("obscode read failed: %v; download failed: %w",
			readErr, err)
	}
	return mpcformat.ReadObscodeDatFile(path)
}
