package corrector

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// ErrEmptyDictionary is returned when a dictionary file holds no usable
// "word count" lines.
var ErrEmptyDictionary = errors.New("corrector: empty dictionary")

// loadFrequencies maps the dictionary file read-only and parses one
// "word count" pair per line. Malformed lines are skipped.
func loadFrequencies(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dictionary: %w", err)
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDictionary)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap dictionary: %w", err)
	}
	defer func() { _ = data.Unmap() }()

	freqs := parseFrequencies(data)
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDictionary)
	}
	return freqs, nil
}

func parseFrequencies(data []byte) map[string]float64 {
	freqs := make(map[string]float64)
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		fields := bytes.Fields(line)
		if len(fields) < 2 {
			continue
		}
		count, err := strconv.ParseFloat(string(fields[1]), 64)
		if err != nil || count <= 0 {
			continue
		}
		// copy out of the mapping, it is released on return
		word := strings.ToLower(string(fields[0]))
		freqs[word] += count
	}
	return freqs
}
