// Package gpio provides GPIO input reading with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Reader reads the hall sensor input states.
type Reader interface {
	// Read returns the logical state of every sensor line, in the order
	// the lines were requested. The raw GPIO values are inverted: the
	// sensors are active-low (pulled up when idle), so raw low = magnet
	// present = true.
	Read() ([]bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultPins holds the BCM pin numbers of the 8 hall sensors, in channel
// table order (Down, Front, Up, Right, Back, Left, Middle, Equator).
var DefaultPins = []int{5, 6, 13, 19, 26, 16, 20, 21}
