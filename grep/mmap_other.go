//go:build !unix

package grep

import "os"

func mapFile(_ *os.File, _ int64) ([]byte, func() error, error) {
	return nil, nil, errMapUnavailable
}
