package storage

import (
	"os"
	"strconv"
	"strings"
)

// Counter persists the last issued alert id as a decimal integer.
type Counter struct {
	path string
}

func NewCounter(path string) *Counter {
	return &Counter{path: path}
}

// Read returns the stored value. ok is false when the file is missing or
// does not hold a non-negative integer.
func (c *Counter) Read() (value int, ok bool, err error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if convErr != nil || n < 0 {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *Counter) Write(value int) error {
	return writeFileAtomic(c.path, []byte(strconv.Itoa(value)+"\n"), 0644)
}
