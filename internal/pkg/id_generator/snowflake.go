package id

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/sonyflake"
)

// Generator hands out unique, roughly time ordered ids. *sonyflake.Sonyflake satisfies it.
type Generator interface {
	NextID() (uint64, error)
}

// epoch is the start of the sonyflake clock.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var ErrGeneratorInit = errors.New("failed to init id generator")

// NewGenerator builds a sonyflake generator for the given machine id.
// machineID 0 lets sonyflake derive one from the private IP.
func NewGenerator(machineID uint16) (*sonyflake.Sonyflake, error) {
	settings := sonyflake.Settings{StartTime: epoch}
	if machineID > 0 {
		settings.MachineID = func() (uint16, error) {
			return machineID, nil
		}
	}
	sf := sonyflake.NewSonyflake(settings)
	if sf == nil {
		return nil, fmt.Errorf("%w: machineID=%d", ErrGeneratorInit, machineID)
	}
	return sf, nil
}

// ExtractTime returns the creation time encoded in an id produced by NewGenerator.
func ExtractTime(id uint64) time.Time {
	parts := sonyflake.Decompose(id)
	const unit = 10 * time.Millisecond
	return epoch.Add(time.Duration(parts["time"]) * unit)
}
